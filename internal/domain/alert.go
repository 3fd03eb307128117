package domain

// Alert is a local notification shown to the user
type Alert struct {
	Body  string
	Sound string
	Title string
}

// ExpiryAlert returns the alert raised when the card is about to expire
func ExpiryAlert() Alert {
	return Alert{
		Title: "Data card expiring soon",
		Body:  "Please top up",
		Sound: "default",
	}
}
