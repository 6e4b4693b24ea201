package ports

import "context"

// ProcessLauncher starts external processes detached from this one. Start
// returns as soon as the OS accepts or rejects the spawn request; the child is
// never waited on. OpenURI hands a URI to the host's default handler.
type ProcessLauncher interface {
	Start(ctx context.Context, argv []string) error
	OpenURI(ctx context.Context, uri string) error
}
