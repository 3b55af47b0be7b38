// Package cmd provides the command line of the ifc tool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/zefrenchwan/ifc.git/config"
	"github.com/zefrenchwan/ifc.git/ifc"
	"github.com/zefrenchwan/ifc.git/model"
	"github.com/zefrenchwan/ifc.git/sample"
	"github.com/zefrenchwan/ifc.git/step"
	"github.com/zefrenchwan/ifc.git/storage"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Runtime is what commands run with: configuration, logger and output
type Runtime struct {
	Config *config.Config
	Logger *zap.SugaredLogger
	Out    io.Writer
}

// OpenStore opens the configured store
func (r *Runtime) OpenStore(ctx context.Context) (storage.Store, error) {
	switch r.Config.Store.Kind {
	case config.STORE_POSTGRES:
		return storage.NewDao(ctx, r.Config.Store.DatabaseURL, r.Logger)
	case config.STORE_BADGER:
		if path := r.Config.Store.BadgerPath; len(path) != 0 {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return nil, fmt.Errorf("creating badger directory: %w", err)
			}
		}

		return storage.NewBadgerStore(r.Config.Store.BadgerPath, r.Logger)
	default:
		return nil, fmt.Errorf("unknown store kind %q", r.Config.Store.Kind)
	}
}

// header returns the file header of a model, completed with configuration
func (r *Runtime) header(m *model.Model, fileName string) step.Header {
	header := ifc.NewHeader(m, fileName)
	if author := r.Config.Header.Author; len(author) != 0 {
		header.Authors = []string{author}
	}

	if organization := r.Config.Header.Organization; len(organization) != 0 {
		header.Organizations = []string{organization}
	}

	header.Authorization = r.Config.Header.Authorization
	header.PreprocessorVersion = "ifc " + Version
	header.OriginatingSystem = "ifc sample generator"
	return header
}

// success prints a green status line
func (r *Runtime) success(format string, values ...any) {
	color.New(color.FgGreen).Fprintf(r.Out, format+"\n", values...)
}

// createFile creates path and fills it with write
func createFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	return writeAndClose(file, path, write)
}

// writeAndClose calls write on file then closes it.
// A close error is returned when the write succeeded, buffered content may be lost.
func writeAndClose(file io.WriteCloser, path string, write func(io.Writer) error) error {
	if err := write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	} else if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return nil
}

// SampleFlags define the generated building
type SampleFlags struct {
	Name         string  `short:"n" default:"sample" help:"Model and project name"`
	Storeys      int     `short:"s" default:"2" help:"Number of storeys"`
	StoreyHeight float64 `default:"3000" help:"Storey height, in millimetres"`
	Width        float64 `default:"10000" help:"Building width, in millimetres"`
	Depth        float64 `default:"6000" help:"Building depth, in millimetres"`
	Thickness    float64 `default:"200" help:"Wall thickness, in millimetres"`
}

// build returns a model filled with the sample building
func (f SampleFlags) build(logger *zap.SugaredLogger) (*model.Model, *sample.Building, error) {
	if f.Storeys <= 0 {
		return nil, nil, fmt.Errorf("storeys should be positive, got %d", f.Storeys)
	}

	m := model.NewModel(f.Name, model.WithLogger(logger))
	options := sample.DefaultOptions()
	options.ProjectName = f.Name
	options.Storeys = f.Storeys
	options.StoreyHeight = f.StoreyHeight
	options.Width = f.Width
	options.Depth = f.Depth
	options.Thickness = f.Thickness
	building, err := sample.Build(m, options)
	if err != nil {
		return nil, nil, err
	}

	return m, building, nil
}

// ExportCmd writes a sample building as an IFC file.
type ExportCmd struct {
	SampleFlags `embed:""`
	Output      string `arg:"" optional:"" help:"Output file, <name>.ifc in the output directory by default"`
}

// Run executes the export command.
func (c *ExportCmd) Run(runtime *Runtime) error {
	m, building, err := c.build(runtime.Logger)
	if err != nil {
		return err
	}

	path := c.Output
	if len(path) == 0 {
		path = filepath.Join(runtime.Config.OutputPath, c.Name+".ifc")
	}

	header := runtime.header(m, filepath.Base(path))
	if err := createFile(path, func(writer io.Writer) error {
		return ifc.WriteFile(writer, m, header, runtime.Logger)
	}); err != nil {
		return err
	}

	runtime.success("✓ Exported %d rooted entities to %s", len(building.Roots), path)
	return nil
}

// SaveCmd serializes a sample building and saves it in the store.
type SaveCmd struct {
	SampleFlags `embed:""`
}

// Run executes the save command.
func (c *SaveCmd) Run(runtime *Runtime) error {
	ctx := context.Background()
	m, _, err := c.build(runtime.Logger)
	if err != nil {
		return err
	}

	instances, err := ifc.Serialize(m, runtime.Logger)
	if err != nil {
		return err
	}

	store, err := runtime.OpenStore(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = store.Close() }()

	if err := store.SaveModel(ctx, storage.NewModelDTO(m.Id, m.Name, ifc.SCHEMA_NAME, instances)); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}

	runtime.success("✓ Saved model %s (%d instances)", m.Id, len(instances))
	fmt.Fprintln(runtime.Out, m.Id)
	return nil
}

// ShowCmd writes a stored model as an IFC file.
type ShowCmd struct {
	Id     string `arg:"" help:"Model id"`
	Output string `short:"o" help:"Output file, standard output by default"`
}

// Run executes the show command.
func (c *ShowCmd) Run(runtime *Runtime) error {
	ctx := context.Background()
	store, err := runtime.OpenStore(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = store.Close() }()

	dto, err := store.LoadModel(ctx, c.Id)
	if err != nil {
		return err
	}

	instances, err := storage.DeserializeInstances(dto.Instances)
	if err != nil {
		return fmt.Errorf("invalid stored model %s: %w", c.Id, err)
	}

	name := dto.Name + ".ifc"
	if len(c.Output) != 0 {
		name = filepath.Base(c.Output)
	}

	header := step.NewHeader(name, dto.Schema)
	header.TimeStamp = dto.CreatedAt
	if len(c.Output) == 0 {
		return step.WriteFile(runtime.Out, header, instances)
	}

	return createFile(c.Output, func(writer io.Writer) error {
		return step.WriteFile(writer, header, instances)
	})
}

// ListCmd lists stored models.
type ListCmd struct {
	Filter string `arg:"" optional:"" help:"Only list models whose name contains filter"`
}

// Run executes the list command.
func (c *ListCmd) Run(runtime *Runtime) error {
	ctx := context.Background()
	store, err := runtime.OpenStore(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = store.Close() }()

	models, err := store.ListModels(ctx, c.Filter)
	if err != nil {
		return err
	}

	if len(models) == 0 {
		fmt.Fprintln(runtime.Out, "No model found")
		return nil
	}

	writer := tabwriter.NewWriter(runtime.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tSCHEMA\tCREATED")
	for _, current := range models {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", current.Id, current.Name, current.Schema, current.CreatedAt.Format(time.RFC3339))
	}

	return writer.Flush()
}

// DeleteCmd removes a stored model.
type DeleteCmd struct {
	Id string `arg:"" help:"Model id"`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(runtime *Runtime) error {
	ctx := context.Background()
	store, err := runtime.OpenStore(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = store.Close() }()

	if err := store.DeleteModel(ctx, c.Id); err != nil {
		return err
	}

	runtime.success("Deleted %s", c.Id)
	return nil
}

// MigrateCmd creates or reverts the postgresql schema.
type MigrateCmd struct {
	Down int `help:"Revert that number of migrations instead of applying them"`
}

// Run executes the migrate command.
func (c *MigrateCmd) Run(runtime *Runtime) error {
	if runtime.Config.Store.Kind != config.STORE_POSTGRES {
		return errors.New("migrations apply to the postgres store only")
	}

	var version uint
	var err error
	if c.Down > 0 {
		version, err = storage.RollbackMigrations(runtime.Config.Store.DatabaseURL, c.Down, runtime.Logger)
	} else {
		version, err = storage.RunMigrations(runtime.Config.Store.DatabaseURL, runtime.Logger)
	}

	if err != nil {
		return err
	}

	runtime.success("✓ Database schema at version %d", version)
	return nil
}

// CLI is the command line root
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`
	Env     string           `short:"e" default:"dev" help:"Environment, reads .env.<env>"`
	Dir     string           `default:"." type:"path" help:"Directory of the .env file"`

	// Commands
	Export  ExportCmd  `cmd:"" help:"Write a sample building as an IFC file"`
	Save    SaveCmd    `cmd:"" help:"Save a sample building in the store"`
	Show    ShowCmd    `cmd:"" help:"Write a stored model as an IFC file"`
	List    ListCmd    `cmd:"" help:"List stored models"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored model"`
	Migrate MigrateCmd `cmd:"" help:"Apply database migrations"`

	// out receives command output
	out io.Writer
}

// NewCLI creates a new CLI instance.
func NewCLI() *CLI {
	return &CLI{out: os.Stdout}
}

// newRuntime loads configuration and builds the logger
func (c *CLI) newRuntime() (*Runtime, error) {
	cfg, err := config.Load(c.Env, c.Dir)
	if err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}

	return &Runtime{Config: cfg, Logger: logger, Out: out}, nil
}

// Execute parses command-line arguments and executes the selected command.
func (c *CLI) Execute(args []string) error {
	parser, err := kong.New(c,
		kong.Name("ifc"),
		kong.Description("Build, export and store IFC2X3 models"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": Version,
		},
	)

	if err != nil {
		return err
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	runtime, err := c.newRuntime()
	if err != nil {
		return err
	}

	defer func() { _ = runtime.Logger.Sync() }()
	return kongCtx.Run(runtime)
}
