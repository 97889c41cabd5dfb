package domain

const (
	HeadlineMaxChars = 30
	MessageMaxChars  = 100
)

// Headline is the short text shown above a post's message.
type Headline struct {
	value string
}

func NewHeadline(raw string) (Headline, error) {
	if err := checkMaxChars("Headline", raw, HeadlineMaxChars); err != nil {
		return Headline{}, err
	}
	return Headline{value: raw}, nil
}

func (h Headline) String() string {
	return h.value
}

// Message is the body text of a post.
type Message struct {
	value string
}

func NewMessage(raw string) (Message, error) {
	if err := checkMaxChars("Message", raw, MessageMaxChars); err != nil {
		return Message{}, err
	}
	return Message{value: raw}, nil
}

func (m Message) String() string {
	return m.value
}
