package tokenizer

import (
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// BPE ranks come from the embedded offline loader, so resolving an encoding
// never downloads from openaipublic.blob.core.windows.net.
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}
