package input

import (
	"fmt"
	"strings"

	kgerrors "github.com/tessro/keyglow/internal/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"go.uber.org/zap"
)

// Ports lists the names of the MIDI ports of the registered driver.
func Ports() (ins, outs []string) {
	for _, in := range midi.GetInPorts() {
		ins = append(ins, in.String())
	}
	for _, out := range midi.GetOutPorts() {
		outs = append(outs, out.String())
	}
	return ins, outs
}

// MatchPort picks a port by name: an exact match wins, then a
// case-insensitive substring. An empty want picks the first port.
func MatchPort(names []string, want string) (int, error) {
	if len(names) == 0 {
		return -1, kgerrors.ErrNoDevices
	}
	if want == "" {
		return 0, nil
	}
	for i, n := range names {
		if n == want {
			return i, nil
		}
	}
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), strings.ToLower(want)) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q: %w", want, kgerrors.ErrDeviceNotFound)
}

// Listen feeds note messages from the named input port into t until stop is
// called. A listener error releases every key.
func Listen(name string, t *Tracker, logger *zap.Logger) (port string, stop func(), err error) {
	ins := midi.GetInPorts()
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}

	idx, err := MatchPort(names, name)
	if err != nil {
		return "", nil, err
	}
	in := ins[idx]

	if !in.IsOpen() {
		if err := in.Open(); err != nil {
			return "", nil, fmt.Errorf("open %q: %w", in.String(), err)
		}
	}

	stopListen, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		if !t.Handle(msg) {
			logger.Debug("Ignoring MIDI message", zap.Stringer("msg", msg))
		}
	}, midi.HandleError(func(listenErr error) {
		logger.Warn("MIDI listener error", zap.String("device", in.String()), zap.Error(listenErr))
		t.ReleaseAll()
	}))
	if err != nil {
		_ = in.Close()
		return "", nil, fmt.Errorf("listen %q: %w", in.String(), err)
	}

	return in.String(), func() {
		stopListen()
		closePort(in, logger)
		t.ReleaseAll()
	}, nil
}

func closePort(in drivers.In, logger *zap.Logger) {
	if err := in.Close(); err != nil {
		logger.Warn("Failed to close MIDI port", zap.String("device", in.String()), zap.Error(err))
	}
}
