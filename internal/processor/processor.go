package processor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/mdtrans/internal/cli"
	"codeberg.org/snonux/mdtrans/internal/language"
	"codeberg.org/snonux/mdtrans/internal/parser"
	"codeberg.org/snonux/mdtrans/internal/pipeline"
	"codeberg.org/snonux/mdtrans/internal/render"
	"codeberg.org/snonux/mdtrans/internal/translation"
)

// Processor runs the translation pipeline over one input path.
type Processor struct {
	flags      *cli.Flags
	lang       language.Language
	translator *translation.Translator
}

// New creates a processor for one run.
func New(flags *cli.Flags, lang language.Language, translator *translation.Translator) *Processor {
	return &Processor{
		flags:      flags,
		lang:       lang,
		translator: translator,
	}
}

// Run processes a single file, or every Markdown/MDX file under a
// directory. In directory mode a failing file is reported and skipped;
// sibling files continue.
func (p *Processor) Run(ctx context.Context, inputPath string) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input path: %w", err)
	}
	if !info.IsDir() {
		return p.ProcessFile(ctx, inputPath)
	}

	var total, failed int
	walkErr := filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSource(path, p.lang.Code) {
			return nil
		}
		total++
		if ferr := p.ProcessFile(ctx, path); ferr != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", path, ferr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("walking %s: %w", inputPath, walkErr)
	}
	if total == 0 {
		fmt.Printf("No Markdown files found under %s\n", inputPath)
		return nil
	}
	if failed == total {
		return fmt.Errorf("all %d files failed", total)
	}
	fmt.Printf("\nDone! Translated %d of %d files.\n", total-failed, total)
	return nil
}

// ProcessFile runs the full pipeline over one file. On any error no
// partial output is written.
func (p *Processor) ProcessFile(ctx context.Context, path string) error {
	doc, err := parser.ParseFile(path)
	if err != nil {
		return err
	}

	units := pipeline.Collect(doc)
	fmt.Printf("%s: %d translatable units\n", path, len(units))

	pipeline.Dispatch(ctx, units, p.translator.Translate, pipeline.DispatchOptions{
		Concurrency:  p.flags.Concurrency,
		Stagger:      p.flags.Stagger,
		ShowProgress: !p.flags.NoProgress,
	})

	pipeline.Janitor(doc, p.lang.Script)
	pipeline.VarGuard(doc)

	out, err := render.Markdown(doc)
	if err != nil {
		return err
	}

	outPath := OutputPath(path, p.lang.Code)
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("Wrote %s\n", outPath)
	return nil
}

// OutputPath inserts the language code before the input's extension:
// docs/guide.md + ja -> docs/guide.ja.md. An existing file of that name
// is overwritten.
func OutputPath(input, code string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "." + code + ext
}

// isSource reports whether path is a translation input: a Markdown/MDX
// file that is not itself an output of a previous run for this language.
func isSource(path, code string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".mdx" && ext != ".markdown" {
		return false
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return !strings.HasSuffix(stem, "."+code)
}
