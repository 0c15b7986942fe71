package extraction

import "context"

// Provider is the contract for the external PDF/OCR text-extraction
// collaborator. The file must already be reachable at a URL (typically a
// signed object-store URL).
type Provider interface {
	Submit(ctx context.Context, fileURL string) (string, error)
}
