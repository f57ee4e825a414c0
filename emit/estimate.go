package emit

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const estimateEncoding = "cl100k_base"

// Estimator counts tokens locally for vendors that did not report output
// usage. Counts are approximate: the encoding is not the vendor's own
// tokenizer, which is why emitted estimates are flagged as such.
type Estimator struct {
	once    sync.Once
	enc     *tiktoken.Tiktoken
	initErr error
}

// init lazily loads the encoding; first use may fetch encoding data.
func (e *Estimator) init() error {
	e.once.Do(func() {
		enc, err := tiktoken.GetEncoding(estimateEncoding)
		if err != nil {
			e.initErr = fmt.Errorf("init tiktoken encoding %s: %w", estimateEncoding, err)
			return
		}
		e.enc = enc
	})
	return e.initErr
}

// Count returns the approximate token count of text, or false when the
// encoding is unavailable.
func (e *Estimator) Count(text string) (int64, bool) {
	if err := e.init(); err != nil {
		return 0, false
	}
	return int64(len(e.enc.Encode(text, nil, nil))), true
}
