// Package flash collects one request's user-facing messages. The bag lives
// for a single request cycle and is serialized into the response view model.
package flash

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

type Bag struct {
	messages []Message
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) add(level Level, text string) {
	b.messages = append(b.messages, Message{Level: level, Text: text})
}

func (b *Bag) Success(text string) { b.add(LevelSuccess, text) }
func (b *Bag) Info(text string) { b.add(LevelInfo, text) }
func (b *Bag) Warning(text string) { b.add(LevelWarning, text) }
func (b *Bag) Error(text string) { b.add(LevelError, text) }

// Messages returns the collected messages in insertion order.
func (b *Bag) Messages() []Message {
	return b.messages
}
