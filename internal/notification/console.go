package notification

import (
	"banking-engine/internal/pkg/apperrors"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	DeviceMobile = "mobile"
	DeviceLaptop = "laptop"
)

type ConsoleSink struct {
	name  string
	label string
	out   io.Writer
}

func NewMobilePhone(out io.Writer) *ConsoleSink {
	return &ConsoleSink{name: "Mobile phone", label: "Mobile phone notification:", out: out}
}

func NewLaptop(out io.Writer) *ConsoleSink {
	return &ConsoleSink{name: "Laptop", label: "Laptop notification:", out: out}
}

func NewDevice(kind string, out io.Writer) (*ConsoleSink, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case DeviceMobile:
		return NewMobilePhone(out), nil
	case DeviceLaptop:
		return NewLaptop(out), nil
	default:
		return nil, fmt.Errorf("%w: unknown device kind %q, supported kinds: %s, %s",
			apperrors.ErrInvalidArgument, kind, DeviceMobile, DeviceLaptop)
	}
}

func (s *ConsoleSink) Name() string {
	return s.name
}

func (s *ConsoleSink) String() string {
	return s.name
}

func (s *ConsoleSink) Update(_ context.Context, message string) error {
	_, err := fmt.Fprintf(s.out, "%s\n%s\n", s.label, message)
	return err
}
