package filestore

import (
	"context"
	"errors"
	"time"
)

// Observer receives timings for every store operation.
type Observer interface {
	ObserveSave(d time.Duration, size int64, err error)
	// ObserveRemove gets a nil err for ErrNotExist; a missing file is not a failure.
	ObserveRemove(d time.Duration, err error)
}

type observed struct {
	next FileStore
	obs  Observer
}

// Observe wraps next so obs sees every Save and Remove.
func Observe(next FileStore, obs Observer) FileStore {
	if obs == nil {
		return next
	}
	return &observed{next: next, obs: obs}
}

func (o *observed) Save(ctx context.Context, obj Object) (string, error) {
	start := time.Now()
	ref, err := o.next.Save(ctx, obj)
	o.obs.ObserveSave(time.Since(start), obj.Size, err)
	return ref, err
}

func (o *observed) Remove(ctx context.Context, ref string) error {
	start := time.Now()
	err := o.next.Remove(ctx, ref)
	if errors.Is(err, ErrNotExist) {
		o.obs.ObserveRemove(time.Since(start), nil)
	} else {
		o.obs.ObserveRemove(time.Since(start), err)
	}
	return err
}
