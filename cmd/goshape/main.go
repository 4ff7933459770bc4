package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/i18n"
	"github.com/reoring/goshape/internal/shapes"
	"github.com/reoring/goshape/shapefile"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "validate":
		return validateCmd(args[1:], stdin, stdout, stderr)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	case "shapes":
		return shapesCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "goshape CLI\n\nUsage:\n  goshape validate -shape Name [-shapes file.yaml] [-list] [-project Target] [-omit-unset] [-dup ignore|warn|error] [-max-depth N] [-lang en|ja] [file|-]\n  goshape schema [-shapes file.yaml] Name[,Name...]\n  goshape shapes [-shapes file.yaml]\n\nNotes:\n  - Built-in shapes are Image, Item, Offer, UserIn, UserOut, ItemQuery, ItemPath.\n  - Shapes from -shapes override built-ins with the same name.")
}

func loadCatalog(file string) (*shapes.Catalog, error) {
	if file == "" {
		return shapes.NewCatalog(shapes.Tutorial()), nil
	}
	reg, err := shapefile.LoadFile(file)
	if err != nil {
		return nil, err
	}
	return shapes.NewCatalog(shapes.Tutorial(), reg), nil
}

func parseSeverity(s string) (goshape.Severity, error) {
	switch s {
	case "ignore":
		return goshape.Ignore, nil
	case "warn":
		return goshape.Warn, nil
	case "error", "":
		return goshape.Error, nil
	}
	return goshape.Ignore, fmt.Errorf("unknown duplicate-key policy %q", s)
}

func validateCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var shapeName, shapesFile, project, dup, lang string
	var list, omitUnset, failFast bool
	var maxDepth int
	fs.StringVar(&shapeName, "shape", "", "shape to validate against")
	fs.StringVar(&shapesFile, "shapes", "", "YAML shape file")
	fs.StringVar(&project, "project", "", "shape to project the result onto")
	fs.StringVar(&dup, "dup", "error", "duplicate key policy: ignore|warn|error")
	fs.StringVar(&lang, "lang", "en", "issue message language: en|ja")
	fs.BoolVar(&list, "list", false, "input is an array of the shape")
	fs.BoolVar(&omitUnset, "omit-unset", false, "omit fields the input did not set")
	fs.BoolVar(&failFast, "fail-fast", false, "stop at the first issue")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if shapeName == "" {
		fs.Usage()
		return 2
	}
	sev, err := parseSeverity(dup)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	i18n.SetLanguage(lang)
	defer i18n.SetLanguage("en")

	cat, err := loadCatalog(shapesFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	s, ok := cat.Get(shapeName)
	if !ok {
		fmt.Fprintf(stderr, "unknown shape %q\n", shapeName)
		return 2
	}
	var target *goshape.Shape
	if project != "" {
		if target, ok = cat.Get(project); !ok {
			fmt.Fprintf(stderr, "unknown shape %q\n", project)
			return 2
		}
	}

	in := stdin
	if p := fs.Arg(0); p != "" && p != "-" {
		f, err := os.Open(p)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer f.Close()
		in = f
	}

	opt := goshape.ParseOpt{
		Strictness: goshape.Strictness{OnDuplicateKey: sev},
		MaxDepth:   maxDepth,
		FailFast:   failFast,
	}
	warn := func(it goshape.Issue) {
		fmt.Fprintf(stderr, "warning: %s at %s\n", it.Code, it.Path)
	}
	v, err := goshape.ReadJSON(in, opt, warn)
	if err != nil {
		return report(stderr, err)
	}

	var recs []*goshape.Record
	if list {
		recs, err = goshape.ValidateList(v, s, opt)
	} else {
		var r *goshape.Record
		r, err = goshape.ValidateValue(v, s, opt)
		recs = []*goshape.Record{r}
	}
	if err != nil {
		return report(stderr, err)
	}
	if target != nil {
		if recs, err = goshape.ProjectAll(recs, target); err != nil {
			return report(stderr, err)
		}
	}

	enc := goshape.EncodeOpt{ExcludeUnset: omitUnset}
	var out any
	if list {
		out = goshape.SerializeList(recs, enc)
	} else {
		out = goshape.Serialize(recs[0], enc)
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, string(b))
	return 0
}

// report prints issues one per line and returns the exit code.
func report(w io.Writer, err error) int {
	iss, ok := goshape.AsIssues(err)
	if !ok {
		fmt.Fprintln(w, err)
		return 1
	}
	for _, it := range iss {
		path := it.Path
		if path == "" {
			path = "(root)"
		}
		line := fmt.Sprintf("%s: %s: %s", path, it.Code, it.Message)
		if it.Hint != "" {
			line += " (" + it.Hint + ")"
		}
		fmt.Fprintln(w, line)
	}
	return 1
}

func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var shapesFile string
	fs.StringVar(&shapesFile, "shapes", "", "YAML shape file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	names := splitCSV(strings.Join(fs.Args(), ","))
	if len(names) == 0 {
		fs.Usage()
		return 2
	}
	cat, err := loadCatalog(shapesFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	for _, n := range names {
		s, ok := cat.Get(n)
		if !ok {
			fmt.Fprintf(stderr, "unknown shape %q\n", n)
			return 2
		}
		b, err := json.MarshalIndent(s.JSONSchema(), "", "  ")
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, string(b))
	}
	return 0
}

func shapesCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("shapes", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var shapesFile string
	fs.StringVar(&shapesFile, "shapes", "", "YAML shape file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	cat, err := loadCatalog(shapesFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	for _, n := range cat.Names() {
		s, _ := cat.Get(n)
		fmt.Fprintln(stdout, s.String())
	}
	return 0
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
