package xbgas

import (
	"fmt"

	"github.com/kolkov/xbgas/internal/rt/transfer"
)

// The typed transfer entry points come in one get/put pair per element
// type, all sharing the addressing, stride, and bounds rules. Stride is in element units; stride 0 fails with
// ErrInvalidStride. A transfer whose strided span would leave the target
// PE's partition fails with ErrOutOfRange before any byte moves.

// GetInt32 copies nelems int32 elements from remote (resolved against PE
// pe's partition, stepping stride elements between reads) into local[0:nelems].
func (r *Runtime) GetInt32(local []int32, remote Addr, nelems, stride, pe int) error {
	return getTyped(r, local, remote, nelems, stride, pe)
}

// PutInt32 copies local[0:nelems] into PE pe's partition at remote, stepping
// stride elements between writes.
func (r *Runtime) PutInt32(local []int32, remote Addr, nelems, stride, pe int) error {
	return putTyped(r, local, remote, nelems, stride, pe)
}

// GetInt64 is the 8-byte signed variant of GetInt32.
func (r *Runtime) GetInt64(local []int64, remote Addr, nelems, stride, pe int) error {
	return getTyped(r, local, remote, nelems, stride, pe)
}

// PutInt64 is the 8-byte signed variant of PutInt32.
func (r *Runtime) PutInt64(local []int64, remote Addr, nelems, stride, pe int) error {
	return putTyped(r, local, remote, nelems, stride, pe)
}

// GetUint64 is the 8-byte unsigned variant of GetInt32.
func (r *Runtime) GetUint64(local []uint64, remote Addr, nelems, stride, pe int) error {
	return getTyped(r, local, remote, nelems, stride, pe)
}

// PutUint64 is the 8-byte unsigned variant of PutInt32.
func (r *Runtime) PutUint64(local []uint64, remote Addr, nelems, stride, pe int) error {
	return putTyped(r, local, remote, nelems, stride, pe)
}

func getTyped[T transfer.Elem](r *Runtime, local []T, remote Addr, nelems, stride, pe int) error {
	if err := checkLocal(len(local), nelems); err != nil {
		return err
	}
	es := transfer.ElemSize[T]()
	buf := make([]byte, nelems*es)
	if err := r.eng.GetBytes(buf, es, uint64(remote), nelems, stride, pe); err != nil {
		return err
	}
	transfer.Decode(local[:nelems], buf)
	return nil
}

func putTyped[T transfer.Elem](r *Runtime, local []T, remote Addr, nelems, stride, pe int) error {
	if err := checkLocal(len(local), nelems); err != nil {
		return err
	}
	es := transfer.ElemSize[T]()
	buf := make([]byte, nelems*es)
	transfer.Encode(buf, local[:nelems])
	return r.eng.PutBytes(buf, es, uint64(remote), nelems, stride, pe)
}

func checkLocal(have, nelems int) error {
	if nelems < 0 {
		return fmt.Errorf("xbgas: negative element count %d: %w", nelems, ErrOutOfRange)
	}
	if have < nelems {
		return fmt.Errorf("xbgas: local buffer holds %d elements, transfer needs %d: %w",
			have, nelems, ErrOutOfRange)
	}
	return nil
}
