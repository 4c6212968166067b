package acoustid

import (
	"context"
	"encoding/json"
	"log/slog"
	"os/exec"

	"discern/internal/identity"
	"discern/internal/logging"
)

const defaultFpcalcBinary = "fpcalc"

// Fingerprinter runs the Chromaprint fpcalc tool against audio files.
type Fingerprinter struct {
	binary string
	logger *slog.Logger
}

// NewFingerprinter creates a runner for the fpcalc binary found on PATH.
func NewFingerprinter(logger *slog.Logger) *Fingerprinter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fingerprinter{
		binary: defaultFpcalcBinary,
		logger: logging.NewComponentLogger(logger, "fpcalc"),
	}
}

// Available reports whether the fpcalc binary can be found.
func (f *Fingerprinter) Available() bool {
	_, err := exec.LookPath(f.binary)
	return err == nil
}

// Fingerprint computes the acoustic fingerprint of the file at path.
// A missing binary or a failed run surfaces as ErrUnavailable so the
// orchestrator moves on to the next strategy.
func (f *Fingerprinter) Fingerprint(ctx context.Context, path string) (*identity.FingerprintData, error) {
	if _, err := exec.LookPath(f.binary); err != nil {
		return nil, identity.Wrap(identity.ErrUnavailable, "fpcalc", "fingerprint",
			"fpcalc not installed", err)
	}

	out, err := exec.CommandContext(ctx, f.binary, "-json", path).Output()
	if err != nil {
		return nil, identity.Wrap(identity.ErrUnavailable, "fpcalc", "fingerprint",
			"fpcalc failed on "+path, err)
	}
	fp, err := parseFingerprint(out)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("fingerprint computed",
		logging.String("path", path),
		logging.Int("duration_seconds", fp.DurationSeconds))
	return fp, nil
}

func parseFingerprint(out []byte) (*identity.FingerprintData, error) {
	var payload struct {
		Duration    float64 `json:"duration"`
		Fingerprint string  `json:"fingerprint"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, identity.Wrap(identity.ErrParse, "fpcalc", "fingerprint",
			"decode fpcalc output", err)
	}
	if payload.Fingerprint == "" {
		return nil, identity.Wrap(identity.ErrParse, "fpcalc", "fingerprint",
			"fpcalc output has no fingerprint", nil)
	}
	return &identity.FingerprintData{
		DurationSeconds: int(payload.Duration),
		Fingerprint:     payload.Fingerprint,
	}, nil
}
