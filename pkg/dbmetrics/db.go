package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/EMR-AppointmentService/pkg/metrics"
)

// defaultPoolStatsInterval период опроса sql.DBStats.
const defaultPoolStatsInterval = 15 * time.Second

// DB обертка над *sql.DB, записывающая метрики каждого запроса
// и статистику connection pool.
type DB struct {
	db  *sql.DB
	rec recorder
}

// Tx обертка над *sql.Tx с теми же метриками запросов.
type Tx struct {
	tx  *sql.Tx
	rec recorder
}

type recorder struct {
	metrics *metrics.Metrics
	service string
}

// Wrap оборачивает db и запускает сбор статистики пула с заданным периодом.
// Горутина сбора останавливается закрытием stopCh.
func Wrap(db *sql.DB, m *metrics.Metrics, serviceName string, interval time.Duration, stopCh <-chan struct{}) *DB {
	wrapped := &DB{
		db:  db,
		rec: recorder{metrics: m, service: serviceName},
	}
	go wrapped.collectPoolStats(interval, stopCh)
	return wrapped
}

// WrapWithDefault как Wrap, но с периодом опроса пула по умолчанию.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	return Wrap(db, m, serviceName, defaultPoolStatsInterval, stopCh)
}

// ExecContext выполняет запрос с записью метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.rec.observe(queryOperation(query), start, err)
	return res, err
}

// QueryContext выполняет запрос с записью метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.rec.observe(queryOperation(query), start, err)
	return rows, err
}

// QueryRowContext выполняет запрос с записью метрик.
// Ошибка *sql.Row проявляется только при Scan, поэтому результат считается ok.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.rec.observe(queryOperation(query), start, nil)
	return row
}

// BeginTx открывает транзакцию; исполнитель внутри неё также пишет метрики.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, rec: d.rec}, nil
}

// Stats возвращает статистику connection pool
func (d *DB) Stats() sql.DBStats {
	return d.db.Stats()
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.rec.metrics.DBOpenConnections.WithLabelValues(d.rec.service).Set(float64(stats.OpenConnections))
			d.rec.metrics.DBInUseConnections.WithLabelValues(d.rec.service).Set(float64(stats.InUse))
			d.rec.metrics.DBIdleConnections.WithLabelValues(d.rec.service).Set(float64(stats.Idle))
		}
	}
}

// ExecContext выполняет запрос внутри транзакции с записью метрик
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.rec.observe(queryOperation(query), start, err)
	return res, err
}

// QueryContext выполняет запрос внутри транзакции с записью метрик
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.rec.observe(queryOperation(query), start, err)
	return rows, err
}

// QueryRowContext выполняет запрос внутри транзакции с записью метрик
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.rec.observe(queryOperation(query), start, nil)
	return row
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func (r recorder) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.metrics.DBQueriesTotal.WithLabelValues(r.service, op, result).Inc()
	r.metrics.DBQueryDuration.WithLabelValues(r.service, op).Observe(time.Since(start).Seconds())
}

// queryOperation возвращает первое ключевое слово запроса (select, insert, ...).
func queryOperation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
