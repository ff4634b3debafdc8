package policy_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/policy"
	"github.com/m-mizutani/gt"
)

const thresholdPolicy = `package evolution

level := 3 if {
	input.experiencePoints >= 500
} else := 2 if {
	input.experiencePoints >= 100
}

description := sprintf("reached level %d", [level])
`

func writePolicy(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "evolution.rego"), []byte(src), 0644))
	return dir
}

func newCompanion(level, xp int) *model.Companion {
	return &model.Companion{
		ID:               model.NewCompanionID(),
		OwnerID:          "15662",
		Level:            level,
		ExperiencePoints: xp,
		State:            model.NewState(time.Now()),
	}
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	p, err := policy.Load(ctx, writePolicy(t, thresholdPolicy))
	gt.NoError(t, err)
	gt.NotNil(t, p)

	t.Run("below threshold", func(t *testing.T) {
		d, err := p.Evaluate(ctx, newCompanion(1, 50))
		gt.NoError(t, err)
		gt.True(t, d == nil)
	})

	t.Run("promotes", func(t *testing.T) {
		d, err := p.Evaluate(ctx, newCompanion(1, 120))
		gt.NoError(t, err)
		gt.NotNil(t, d)
		gt.Equal(t, d.Level, 2)
		gt.Equal(t, d.Description, "reached level 2")
	})

	t.Run("skips levels", func(t *testing.T) {
		d, err := p.Evaluate(ctx, newCompanion(1, 800))
		gt.NoError(t, err)
		gt.Equal(t, d.Level, 3)
	})

	t.Run("already at granted level", func(t *testing.T) {
		d, err := p.Evaluate(ctx, newCompanion(2, 150))
		gt.NoError(t, err)
		gt.True(t, d == nil)
	})
}

func TestLoadEmptyDir(t *testing.T) {
	p, err := policy.Load(context.Background(), t.TempDir())
	gt.NoError(t, err)
	gt.True(t, p == nil)

	// a nil policy never promotes
	d, err := p.Evaluate(context.Background(), newCompanion(1, 10000))
	gt.NoError(t, err)
	gt.True(t, d == nil)
}

func TestLoadInvalidPolicy(t *testing.T) {
	_, err := policy.Load(context.Background(), writePolicy(t, "package evolution\n\nlevel := {"))
	gt.Error(t, err)
}

func TestEvaluateMissingDescription(t *testing.T) {
	ctx := context.Background()
	p, err := policy.Load(ctx, writePolicy(t, "package evolution\n\nlevel := 2\n"))
	gt.NoError(t, err)

	_, err = p.Evaluate(ctx, newCompanion(1, 0))
	gt.Error(t, err)
}
