package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/utils/complexx"
	"github.com/msto63/cplx/internal/calc"
	"github.com/msto63/cplx/internal/server"
	"github.com/msto63/cplx/pkg/core/config"
	"github.com/msto63/cplx/pkg/core/logging"
)

func TestWatchSettings(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"error\"\n\n[eval]\nstrict = false\n")

	var err error
	settings, err = config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	logger, err = logging.NewLogger(logging.FromSettings("cplx", settings.Log))
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	opts := calc.OptionsFromSettings(settings.Eval)
	opts.Logger = logger.Logger
	e := calc.NewEvaluator(nil, opts)
	defer e.Close()
	srv := server.New(server.ConfigFromSettings(settings), e, logger.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchSettings(ctx, &cobra.Command{}, e, srv)

	staged := filepath.Join(filepath.Dir(path), "staged.toml")
	if err := os.WriteFile(staged, []byte("[log]\nlevel = \"error\"\n\n[eval]\nstrict = true\n\n[output]\nprecision = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(staged, future, future); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(staged, path); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !e.Strict() {
		if time.Now().After(deadline) {
			t.Fatal("strict mode not applied after the config file changed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	_, err = e.Evaluate(context.Background(), "div", complexx.One, complexx.Zero)
	if !cplxerror.HasCode(err, cplxerror.CodeDegenerateValue) {
		t.Errorf("div by zero after reload error = %v, want DEGENERATE_VALUE", err)
	}
}
