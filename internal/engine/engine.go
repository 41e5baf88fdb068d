package engine

// Engine bundles the knit components over one shared git runner.
type Engine struct {
	Git        GitRunner
	Store      *Store
	Classifier *Classifier
	Rebuilder  *Rebuilder
}

// New creates an Engine over the given git runner
func New(git GitRunner) *Engine {
	return &Engine{
		Git:        git,
		Store:      NewStore(git),
		Classifier: NewClassifier(git),
		Rebuilder:  NewRebuilder(git),
	}
}
