package add

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-descriptor/internal/descriptor"
	"github.com/jakoblorz/go-descriptor/internal/models"
	"github.com/jakoblorz/go-descriptor/internal/tui"
)

// Flow orchestrates the add command using huh forms.
type Flow struct {
	store *descriptor.Store
	path  string
	theme *huh.Theme
}

// Answers holds what the user entered
type Answers struct {
	Scope      models.Scope
	Coordinate string
	Platform   bool
}

// Result captures the successful output of the flow.
type Result struct {
	Path       string
	Scope      models.Scope
	Coordinate models.Coordinate
	Descriptor *models.Descriptor
}

// NewFlow constructs a Flow editing the descriptor at path.
func NewFlow(store *descriptor.Store, path string) *Flow {
	return &Flow{
		store: store,
		path:  path,
		theme: tui.NewHuhTheme(),
	}
}

// Run executes the forms sequentially; returns nil result on user abort.
func (f *Flow) Run() (*Result, error) {
	scope, err := f.selectScope()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	coordinate, platform, err := f.inputCoordinate(scope)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	return f.Apply(Answers{Scope: scope, Coordinate: coordinate, Platform: platform})
}

// Apply adds the answered dependency to the descriptor file
func (f *Flow) Apply(answers Answers) (*Result, error) {
	coord, err := models.ParseCoordinate(answers.Coordinate)
	if err != nil {
		return nil, err
	}
	coord.Scope = answers.Scope
	if answers.Platform {
		coord.Kind = models.KindPlatform
	}

	d, err := f.store.AddDependency(f.path, answers.Scope, descriptor.EntryFor(coord))
	if err != nil {
		return nil, err
	}

	// report the coordinate as stored, with any managed version filled in
	for _, c := range d.Dependencies.Scoped(answers.Scope) {
		if c.Key() == coord.Key() {
			coord = c
			break
		}
	}

	return &Result{
		Path:       f.path,
		Scope:      answers.Scope,
		Coordinate: coord,
		Descriptor: d,
	}, nil
}

func (f *Flow) selectScope() (models.Scope, error) {
	scope := string(models.ScopeCompile)

	opts := []huh.Option[string]{
		huh.NewOption("compile: needed to build and run the project", string(models.ScopeCompile)),
		huh.NewOption("test: only on the test classpath", string(models.ScopeTest)),
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&scope),
		).
			Title("Dependency Scope").
			Description(fmt.Sprintf("Adding to %s", f.path)),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return "", err
	}

	return models.ParseScope(scope)
}

func (f *Flow) inputCoordinate(scope models.Scope) (string, bool, error) {
	coordinate := ""
	platform := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Coordinate").
				Placeholder("com.fasterxml.jackson.core:jackson-databind:2.15.2").
				Value(&coordinate).
				Validate(ValidateCoordinate),
			huh.NewConfirm().
				Title("Is this a platform (BOM)?").
				Description("Platforms only pin the versions of other dependencies.").
				Affirmative("Platform").
				Negative("Library").
				Value(&platform),
		).
			Title("Dependency").
			Description(fmt.Sprintf("namespace:artifact[:version] for the %s scope", scope)),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		return "", false, err
	}

	return strings.TrimSpace(coordinate), platform, nil
}

// ValidateCoordinate checks coordinate notation as typed into the form
func ValidateCoordinate(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("coordinate cannot be empty")
	}

	c, err := models.ParseCoordinate(v)
	if err != nil {
		return err
	}
	return c.Validate()
}
