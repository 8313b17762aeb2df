package forum

// User is a registered account. PasswordHash is persisted and currently
// included in responses; see DESIGN.md for the flag on that choice.
type User struct {
	Key          string `dynamodbav:"key" json:"key"`
	Email        string `dynamodbav:"email" json:"email"`
	Name         string `dynamodbav:"name" json:"name"`
	Description  string `dynamodbav:"description" json:"description"`
	PasswordHash string `dynamodbav:"password_hash" json:"password_hash"`
	CreatedAt    string `dynamodbav:"created_at,omitempty" json:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at,omitempty" json:"updated_at"`
}

// Thread is a discussion topic. Author is hydrated on read and never
// persisted; only AuthorKey is stored.
type Thread struct {
	Key       string `dynamodbav:"key" json:"key"`
	Name      string `dynamodbav:"name" json:"name"`
	AuthorKey string `dynamodbav:"author_key" json:"author_key"`
	CreatedAt string `dynamodbav:"created_at,omitempty" json:"created_at"`

	Author *User `dynamodbav:"-" json:"author,omitempty"`
}

// Post is a message within a thread. Author is hydrated on read and never
// persisted.
type Post struct {
	Key       string `dynamodbav:"key" json:"key"`
	ThreadKey string `dynamodbav:"thread_key" json:"thread_key"`
	AuthorKey string `dynamodbav:"author_key" json:"author_key"`
	Body      string `dynamodbav:"body" json:"body"`
	CreatedAt string `dynamodbav:"created_at,omitempty" json:"created_at"`

	Author *User `dynamodbav:"-" json:"author,omitempty"`
}
