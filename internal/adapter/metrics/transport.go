package metrics

import (
	"context"
	"time"

	"wom-connector/internal/core/ports"
)

// InstrumentedTransport records every call made through the wrapped transport.
type InstrumentedTransport struct {
	next    ports.RegistryTransport
	metrics *Metrics
	now     func() time.Time
}

// WrapTransport decorates next with Registry call metrics.
func WrapTransport(next ports.RegistryTransport, m *Metrics) *InstrumentedTransport {
	return &InstrumentedTransport{next: next, metrics: m, now: time.Now}
}

func (t *InstrumentedTransport) Post(ctx context.Context, path string, body any, out any) error {
	start := t.now()
	err := t.next.Post(ctx, path, body, out)
	t.metrics.ObserveRegistryCall(path, err, t.now().Sub(start))
	return err
}

func (t *InstrumentedTransport) PostAuth(ctx context.Context, path string, auth ports.BasicAuth, body any, out any) error {
	start := t.now()
	err := t.next.PostAuth(ctx, path, auth, body, out)
	t.metrics.ObserveRegistryCall(path, err, t.now().Sub(start))
	return err
}

func (t *InstrumentedTransport) Get(ctx context.Context, path string) ([]byte, error) {
	start := t.now()
	data, err := t.next.Get(ctx, path)
	t.metrics.ObserveRegistryCall(path, err, t.now().Sub(start))
	return data, err
}
