package driven

// PromptStore provides access to generation prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
// Each template expects a single %s placeholder for the source text.
const (
	// PromptBlog produces the long-form Markdown article.
	PromptBlog = "blog"

	// PromptXPost produces the short post; the template instructs the
	// backend to respect the 280 visible-character ceiling.
	PromptXPost = "x_post"

	// PromptLinkedIn produces the professional-tone post.
	PromptLinkedIn = "linkedin"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Services implementing this interface can have their prompt templates customised
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
