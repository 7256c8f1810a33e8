package restshape

// UnknownPolicy controls how mapping keys not declared in a schema are
// handled. Every mapping schema carries exactly one policy; nested schemas
// apply their own policy independently of their parent.
type UnknownPolicy int

const (
	UnknownRaise    UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownIgnore                        // Drop unknown keys silently.
	UnknownPreserve                      // Pass unknown keys through unchanged.
)

// ParseOpt bundles parsing options.
type ParseOpt struct {
	FailFast bool
}
