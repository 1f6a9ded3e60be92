package repokit

import (
	"context"
	"testing"
)

type fakeRepo struct{ q Queryer }

type fakeQueryer struct{ Queryer }

func TestBindFunc(t *testing.T) {
	t.Parallel()

	var b Binder[fakeRepo] = BindFunc[fakeRepo](func(q Queryer) fakeRepo {
		return fakeRepo{q: q}
	})

	q := fakeQueryer{}
	got := b.Bind(q)
	if got.q != Queryer(q) {
		t.Fatalf("Bind did not pass through the Queryer")
	}
}

func TestMustBind_PanicsOnNilQueryer(t *testing.T) {
	t.Parallel()

	b := BindFunc[fakeRepo](func(q Queryer) fakeRepo { return fakeRepo{q: q} })

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on nil Queryer")
		}
	}()
	_ = MustBind[fakeRepo](b, nil)
}

type fakeTx struct {
	Queryer
	calls int
}

func (f *fakeTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	f.calls++
	return fn(f)
}

func TestWithTx_DelegatesToRunner(t *testing.T) {
	t.Parallel()

	tx := &fakeTx{}
	ran := false
	err := WithTx(context.Background(), tx, func(q Queryer) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx returned error: %v", err)
	}
	if !ran || tx.calls != 1 {
		t.Fatalf("WithTx did not run fn inside the runner (ran=%v calls=%d)", ran, tx.calls)
	}
}
