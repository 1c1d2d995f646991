package emailsvc

import (
	"sync"

	"github.com/pulseportal/pulse/core"
)

// SentMessages records everything sent through the dummy service; tests
// inspect it.
var (
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

type dummyService struct{}

var _ core.EmailService = (*dummyService)(nil)

// NewDummyService returns an EmailService for tests: messages are recorded
// synchronously, never sent.
func NewDummyService() core.EmailService {
	return &dummyService{}
}

func (svc dummyService) SendMessages(messages ...*core.EmailMessage) {
	mu.Lock()
	defer mu.Unlock()
	for _, msg := range messages {
		if msg.HasRecipients() && msg.HasContent() {
			SentMessages = append(SentMessages, *msg)
		}
	}
}

// ClearSentMessages resets the record between tests.
func ClearSentMessages() {
	mu.Lock()
	defer mu.Unlock()
	SentMessages = SentMessages[:0]
}
