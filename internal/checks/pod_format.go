package checks

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/agentflare-ai/check-tool/internal/report"
)

const (
	podRenderer     = "perldoc"
	podWrapFailure  = "can't break line"
	podChecker      = "podchecker"
	podCheckerClean = "pod syntax OK"
)

// PodFormatting renders the tool's POD and runs podchecker over it when the
// latter is installed.
type PodFormatting struct {
	deps Deps
}

func (PodFormatting) Name() string { return "pod-formatting" }

func (c PodFormatting) Run(ctx context.Context, tool *Tool, rep *report.Reporter) error {
	var renderErr, syntaxErr error

	res, err := c.deps.Runner.Run(ctx, podRenderer, "-T", "--", tool.Path)
	if err != nil {
		renderErr = err
	} else if strings.Contains(res.Output, podWrapFailure) {
		rep.Violation("%s has lines too long", tool.Name)
	}

	if path, err := c.deps.Runner.LookPath(podChecker); err == nil {
		res, err := c.deps.Runner.Run(ctx, path, "--", tool.Path)
		if err != nil {
			syntaxErr = err
		} else if !strings.Contains(res.Output, podCheckerClean) {
			rep.Block(tool.Name+" has POD errors:", res.Output)
		}
	} else {
		c.deps.Logger.Debug().Err(err).Msg("podchecker not installed")
	}

	switch {
	case renderErr != nil && syntaxErr != nil:
		return errors.Errorf("render POD: %v; check POD syntax: %v", renderErr, syntaxErr)
	case renderErr != nil:
		return errors.Wrap(renderErr, "render POD")
	case syntaxErr != nil:
		return errors.Wrap(syntaxErr, "check POD syntax")
	}
	return nil
}
