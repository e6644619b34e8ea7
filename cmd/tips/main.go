package main

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/bodgit/tips"
	"github.com/bodgit/tips/codec"
	"github.com/bodgit/tips/format"
)

const defaultDB = "tips.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func pixelFormat(c *cli.Context) (format.Format, error) {
	f, err := format.Parse(c.String("format"))
	if err != nil {
		return format.Undefined, err
	}
	if !f.IsValid() {
		return format.Undefined, fmt.Errorf("%s is not a concrete pixel format", f)
	}
	return f, nil
}

func openToolkit(c *cli.Context) (*tips.Toolkit, error) {
	return tips.New(c.String("db"), newLogger(c))
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   format.RGBA8.String(),
		Usage:   "pixel format for TIPS output, see the formats command",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "tips"
	app.Usage = "Typed image pixel store utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TIPS_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "formats",
			Usage: "List the supported pixel formats",
			Action: func(c *cli.Context) error {
				w := tabwriter.NewWriter(c.App.Writer, 0, 8, 2, ' ', 0)
				fmt.Fprintln(w, "FORMAT\tCHANNELS\tBITS\tBYTES/PIXEL")
				for _, f := range format.Formats() {
					fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", f, format.Channels(f), f.BitsPerChannel(), format.BytesPerPixel(f))
				}
				return w.Flush()
			},
		},
		{
			Name:      "info",
			Usage:     "Describe an image file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer f.Close()

				cfg, name, err := image.DecodeConfig(f)
				if err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Fprintf(c.App.Writer, "type:        %s\nsize:        %dx%d\n", name, cfg.Width, cfg.Height)

				if name != "tips" {
					return nil
				}

				if _, err := f.Seek(0, io.SeekStart); err != nil {
					return cli.Exit(err, 1)
				}
				h, err := codec.ReadHeader(f)
				if err != nil {
					return cli.Exit(err, 1)
				}
				fmt.Fprintf(c.App.Writer, "format:      %s\nchannels:    %d\nbytes/pixel: %d\ndata:        %d bytes\n", h.Format, h.Format.Channels(), h.Format.BytesPerPixel(), h.Size())

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert an image between file types",
			Description: "The output type is chosen from the OUTPUT extension: .tips, .png, .jpg or .gif",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: []cli.Flag{
				formatFlag(),
				&cli.IntFlag{
					Name:  "colors",
					Value: tips.DefaultColors,
					Usage: "maximum palette size for GIF output",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				pf, err := pixelFormat(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				logger := newLogger(c)

				m, name, err := tips.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}
				logger.Printf("Read %s image %dx%d\n", name, m.Bounds().Dx(), m.Bounds().Dy())

				if err := tips.WriteFile(c.Args().Get(1), m, pf, c.Int("colors")); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Import images into the database",
			Description: "Every decodable image under PATH is converted to the chosen pixel format and stored",
			ArgsUsage:   "PATH",
			Flags: []cli.Flag{
				formatFlag(),
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				pf, err := pixelFormat(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				t, err := openToolkit(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer t.Close()

				if err := t.Scan(c.Args().First(), pf); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List the images in the database",
			Action: func(c *cli.Context) error {
				t, err := openToolkit(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer t.Close()

				entries, err := t.Catalog().List()
				if err != nil {
					return cli.Exit(err, 1)
				}

				w := tabwriter.NewWriter(c.App.Writer, 0, 8, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tFORMAT\tSIZE\tSHA1\tNAME")
				for _, e := range entries {
					fmt.Fprintf(w, "%d\t%s\t%dx%d\t%s\t%s\n", e.ID, e.Header.Format, e.Header.Width, e.Header.Height, e.SHA1, e.Name)
				}
				return w.Flush()
			},
		},
		{
			Name:        "export",
			Usage:       "Export an image from the database",
			Description: "The output type is chosen from the FILE extension: .tips, .png, .jpg or .gif",
			ArgsUsage:   "ID FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				id, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
				if err != nil {
					return cli.Exit(err, 1)
				}

				t, err := openToolkit(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer t.Close()

				if err := t.Export(id, c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
