package ext

import (
	"errors"
	"testing"

	"github.com/rv32i-go/rv32icore/bits"
	"github.com/rv32i-go/rv32icore/errs"
	"github.com/rv32i-go/rv32icore/reg"
)

func TestUnit_AlwaysFails(t *testing.T) {
	_, err := Unit{}.Decode(0)
	if !errors.Is(err, errs.ErrFailedDecodeInstruction) {
		t.Errorf("Unit.Decode error = %v, want ErrFailedDecodeInstruction", err)
	}
}

func TestEnvWrapper_RecognizesECALLAndEBREAK(t *testing.T) {
	w := EnvWrapper{Inner: Unit{}}

	ecall := bits.Word(systemOpcode)
	d, err := w.Decode(ecall)
	if err != nil {
		t.Fatalf("Decode(ecall) error = %v", err)
	}
	var pc reg.Cell32
	regs := reg.NewFile()
	if err := d.Execute(&pc, regs, nil); !errors.Is(err, errs.ErrEnvironmentCall) {
		t.Errorf("ecall Execute error = %v, want ErrEnvironmentCall", err)
	}

	ebreak := bits.Word(systemOpcode) | (1 << 20)
	d, err = w.Decode(ebreak)
	if err != nil {
		t.Fatalf("Decode(ebreak) error = %v", err)
	}
	if err := d.Execute(&pc, regs, nil); !errors.Is(err, errs.ErrBreakpoint) {
		t.Errorf("ebreak Execute error = %v, want ErrBreakpoint", err)
	}
}

func TestEnvWrapper_DelegatesToInner(t *testing.T) {
	sentinel := errors.New("inner decoded it")
	inner := stubDecoder{err: sentinel}
	w := EnvWrapper{Inner: inner}

	// opcode 0b0110011 (OP) is not SYSTEM, so this must reach Inner.
	_, err := w.Decode(0b0110011)
	if !errors.Is(err, sentinel) {
		t.Errorf("Decode error = %v, want sentinel from Inner", err)
	}
}

func TestEnvWrapper_NilInnerFailsClosed(t *testing.T) {
	w := EnvWrapper{}
	_, err := w.Decode(0b0110011)
	if !errors.Is(err, errs.ErrFailedDecodeInstruction) {
		t.Errorf("Decode error = %v, want ErrFailedDecodeInstruction", err)
	}
}

type stubDecoder struct{ err error }

func (s stubDecoder) Decode(bits.Word) (Decoded, error) { return nil, s.err }
