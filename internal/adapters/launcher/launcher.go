package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/zamvr/vrcswitch/internal/domain"
	"github.com/zamvr/vrcswitch/internal/ports"
)

// startFunc spawns argv detached and returns once the OS accepts or rejects
// the request.
type startFunc func(ctx context.Context, argv []string) error

type Launcher struct {
	start startFunc
}

var _ ports.ProcessLauncher = (*Launcher)(nil)

func NewLauncher() *Launcher {
	return &Launcher{start: startDetached}
}

func (l *Launcher) Start(ctx context.Context, argv []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(argv) == 0 {
		return fmt.Errorf("%w: empty command", domain.ErrSpawn)
	}

	if err := l.start(ctx, argv); err != nil {
		return fmt.Errorf("start %q: %w: %v", argv[0], domain.ErrSpawn, err)
	}

	return nil
}

func (l *Launcher) OpenURI(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if uri == "" {
		return fmt.Errorf("%w: empty uri", domain.ErrSpawn)
	}

	argv := openerArgv(runtime.GOOS, uri)
	if len(argv) == 0 {
		return fmt.Errorf("%w: no uri handler for %s", domain.ErrSpawn, runtime.GOOS)
	}

	if err := l.start(ctx, argv); err != nil {
		return fmt.Errorf("open %q: %w: %v", uri, domain.ErrSpawn, err)
	}

	return nil
}

// startDetached must not use exec.CommandContext: cancellation would kill the
// child, and a launched game has to outlive this process.
func startDetached(_ context.Context, argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}

	return cmd.Process.Release()
}

func openerArgv(goos, uri string) []string {
	switch goos {
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", uri}
	case "darwin":
		return []string{"open", uri}
	case "linux":
		return []string{"xdg-open", uri}
	default:
		return nil
	}
}
