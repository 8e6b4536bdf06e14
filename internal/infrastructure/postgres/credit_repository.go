package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/marmolia-api/internal/domain/repository"
)

var _ repository.CreditRepository = (*CreditRepo)(nil)

// CreditRepo operaciones sobre el saldo de créditos IA (columna credit_balance
// de customers). El débito es un UPDATE condicional: la comparación y la resta
// ocurren en la misma sentencia, así que dos débitos concurrentes jamás dejan
// el saldo negativo.
type CreditRepo struct {
	q Querier
}

// NewCreditRepository construye el adaptador de créditos. Pasar pool o tx (Querier).
func NewCreditRepository(q Querier) *CreditRepo {
	return &CreditRepo{q: q}
}

// GetBalance devuelve el saldo actual. found=false si el cliente no existe en
// el tenant.
func (r *CreditRepo) GetBalance(ctx context.Context, tenantID, customerID string) (decimal.Decimal, bool, error) {
	query := `SELECT credit_balance FROM customers WHERE tenant_id = $1 AND id = $2`
	var balance decimal.Decimal
	err := r.q.QueryRow(ctx, query, tenantID, customerID).Scan(&balance)
	if err != nil {
		if isNoRows(err) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("get credit balance: %w", err)
	}
	return balance, true, nil
}

// Debit descuenta amount del saldo solo si alcanza. applied=false cuando la
// fila no existe o el saldo es insuficiente; el caller re-lee el saldo para
// distinguir los dos casos.
func (r *CreditRepo) Debit(ctx context.Context, tenantID, customerID string, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	query := `
		UPDATE customers
		SET credit_balance = credit_balance - $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2 AND credit_balance >= $3
		RETURNING credit_balance`
	var balance decimal.Decimal
	err := r.q.QueryRow(ctx, query, tenantID, customerID, amount).Scan(&balance)
	if err != nil {
		if isNoRows(err) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("debit credits: %w", err)
	}
	return balance, true, nil
}

// Credit abona amount al saldo (recarga del admin). applied=false si el
// cliente no existe en el tenant.
func (r *CreditRepo) Credit(ctx context.Context, tenantID, customerID string, amount decimal.Decimal) (decimal.Decimal, bool, error) {
	query := `
		UPDATE customers
		SET credit_balance = credit_balance + $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
		RETURNING credit_balance`
	var balance decimal.Decimal
	err := r.q.QueryRow(ctx, query, tenantID, customerID, amount).Scan(&balance)
	if err != nil {
		if isNoRows(err) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("credit credits: %w", err)
	}
	return balance, true, nil
}

// TotalByTenant suma el saldo pendiente de todos los clientes del tenant
// (tarjeta del dashboard).
func (r *CreditRepo) TotalByTenant(ctx context.Context, tenantID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(credit_balance), 0) FROM customers WHERE tenant_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, tenantID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum credit balances: %w", err)
	}
	return total, nil
}
