package domain

// CommonOptions contains shared options for a ghget run.
type CommonOptions struct {
	Verbose bool
	Quiet   bool
	Force   bool
}
