package render

import "context"

type Renderer interface {
	RenderPage(ctx context.Context, view PageView) ([]byte, error)
	RenderPlaceholder(ctx context.Context, view PlaceholderView) ([]byte, error)
	RenderPlaybookList(ctx context.Context, view PlaybookListView) ([]byte, error)
	RenderPlaybook(ctx context.Context, view PlaybookView) ([]byte, error)
	RenderNotFound(ctx context.Context, view NotFoundView) ([]byte, error)
}
