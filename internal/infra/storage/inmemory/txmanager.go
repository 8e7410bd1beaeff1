package inmemory

import "context"

// TxManager транзакционная заглушка для in-memory хранилища.
// Атомарность мутаций обеспечивают мьютекс хранилища и per-doctor
// блокировки выше по стеку, поэтому fn выполняется как есть.
// Сигнатуры совпадают с pkg/txmanager, подключение в main идентично.
type TxManager struct{}

// NewTransactionManager создает транзакционную заглушку
func NewTransactionManager() *TxManager {
	return &TxManager{}
}

// Do выполняет fn без транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoSerializable выполняет fn без транзакции
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoReadOnly выполняет fn без транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
