// Package stickers normalizes the names of SVG sticker assets to a
// category_index.svg scheme.
package stickers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const ext = ".svg"

// Category is a subdirectory of the sticker root.
type Category struct {
	// Name of the subdirectory.
	Name string

	// Prefix of the normalized file names, e.g. "arrow" for arrow_1.svg.
	Prefix string

	Order Order

	// Rename is false for categories that are only checked.
	Rename bool
}

func DefaultCategories() []Category {
	return []Category{
		{Name: "arrows", Prefix: "arrow", Order: Natural, Rename: true},
		{Name: "doodles", Prefix: "doodle", Order: Natural},
		{Name: "illustrations", Prefix: "illustration", Order: Natural},
		{Name: "infographic", Prefix: "infographic", Order: Lexical, Rename: true},
		{Name: "underlines", Prefix: "underline", Order: Natural},
	}
}

func (c Category) target(i int) string {
	return c.Prefix + "_" + strconv.Itoa(i) + ext
}

func (c Category) tempPrefix() string {
	return ".rename-" + c.Prefix + "_"
}

func (c Category) temp(i int) string {
	return c.tempPrefix() + strconv.Itoa(i) + ext + ".tmp"
}

func (c Category) pattern() *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(c.Prefix) + `_(\d+)\.svg$`)
}

// Move renames From to To inside a category directory.
type Move struct {
	From string
	To   string
}

type Result struct {
	Category string
	Files    int
	Renamed  int

	// Canonical is set when the names were already prefix_1..prefix_n and
	// nothing was touched.
	Canonical bool
}

type CheckResult struct {
	Category   string
	Files      int
	Conforming bool
}

type RenamerConfig struct {
	Root   string
	Logger hclog.Logger
}

type Renamer struct {
	conf   *RenamerConfig
	rename func(oldpath, newpath string) error
}

func NewRenamer(conf RenamerConfig) (*Renamer, error) {
	if conf.Logger == nil {
		conf.Logger = hclog.NewNullLogger()
	}
	if conf.Root == "" {
		return nil, fmt.Errorf("no sticker root")
	}
	return &Renamer{conf: &conf, rename: os.Rename}, nil
}

func (r *Renamer) dir(c Category) string {
	return filepath.Join(r.conf.Root, c.Name)
}

// files lists the SVG regular files of a category in its sort order.
func (r *Renamer) files(c Category) ([]string, error) {
	entries, err := os.ReadDir(r.dir(c))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != ext {
			continue
		}
		names = append(names, e.Name())
	}
	sortNames(names, c.Order)
	return names, nil
}

// Plan returns the moves Rename would perform, numbering files from 1 in the
// category's sort order. Moves whose source already has the target name are
// included.
func (r *Renamer) Plan(c Category) ([]Move, error) {
	names, err := r.files(c)
	if err != nil {
		return nil, err
	}
	moves := make([]Move, len(names))
	for i, name := range names {
		moves[i] = Move{From: name, To: c.target(i + 1)}
	}
	return moves, nil
}

// Rename renames every SVG file of the category to prefix_index.svg. Files
// are first moved to temporary names and then to their final names, so old
// and new names may overlap. A directory already named prefix_1..prefix_n is
// left as is. On failure every file is moved back to its original name.
func (r *Renamer) Rename(c Category) (Result, error) {
	logger := r.conf.Logger.With("category", c.Name)
	res := Result{Category: c.Name}
	dir := r.dir(c)

	// Temporary names are not listed by files.
	left, err := r.leftovers(c)
	if err != nil {
		return res, err
	}
	if len(left) > 0 {
		return res, fmt.Errorf("temporary files left by an earlier run, restore them first: %s", strings.Join(left, ", "))
	}

	moves, err := r.Plan(c)
	if err != nil {
		return res, err
	}
	res.Files = len(moves)

	names := make([]string, len(moves))
	from := make(map[string]bool, len(moves))
	for i, m := range moves {
		names[i] = m.From
		from[m.From] = true
	}
	if isCanonical(names, c) {
		res.Canonical = true
		logger.Info("Already normalized", "files", res.Files)
		return res, nil
	}

	// Targets must not be held by entries files skipped.
	for _, m := range moves {
		if from[m.To] {
			continue
		}
		_, err := os.Lstat(filepath.Join(dir, m.To))
		if err == nil {
			return res, fmt.Errorf("target name taken by a non-file entry: %s", m.To)
		}
		if !os.IsNotExist(err) {
			return res, err
		}
	}

	logger.Info("Renaming", "files", len(moves), "order", c.Order.String())
	for i, m := range moves {
		err := r.rename(filepath.Join(dir, m.From), filepath.Join(dir, c.temp(i+1)))
		if err != nil {
			r.rollback(dir, c, moves[:i])
			return res, fmt.Errorf("rename %s: %w", m.From, err)
		}
	}

	for i, m := range moves {
		err := r.rename(filepath.Join(dir, c.temp(i+1)), filepath.Join(dir, m.To))
		if err != nil {
			r.restore(dir, c, moves, i)
			return res, fmt.Errorf("rename %s to %s: %w", c.temp(i+1), m.To, err)
		}
		logger.Debug("Renamed", "from", m.From, "to", m.To)
	}

	for _, m := range moves {
		if m.From != m.To {
			res.Renamed++
		}
	}
	logger.Info("Renamed", "files", res.Files, "changed", res.Renamed)
	return res, nil
}

// leftovers lists temporary names of the category present in its directory.
func (r *Renamer) leftovers(c Category) ([]string, error) {
	entries, err := os.ReadDir(r.dir(c))
	if err != nil {
		return nil, err
	}
	var left []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), c.tempPrefix()) {
			left = append(left, e.Name())
		}
	}
	return left, nil
}

// rollback restores files already moved to temporary names.
func (r *Renamer) rollback(dir string, c Category, done []Move) {
	for i, m := range done {
		err := r.rename(filepath.Join(dir, c.temp(i+1)), filepath.Join(dir, m.From))
		if err != nil {
			r.conf.Logger.Error("Failed to restore file", "category", c.Name, "file", m.From, "temp", c.temp(i+1), "error", err)
		}
	}
}

// restore undoes a phase two that failed at move failed: files already under
// their final names go back to temporary names, then all are rolled back.
func (r *Renamer) restore(dir string, c Category, moves []Move, failed int) {
	for i, m := range moves[:failed] {
		err := r.rename(filepath.Join(dir, m.To), filepath.Join(dir, c.temp(i+1)))
		if err != nil {
			r.conf.Logger.Error("Failed to restore file", "category", c.Name, "file", m.To, "temp", c.temp(i+1), "error", err)
		}
	}
	r.rollback(dir, c, moves)
}

// Check reports whether every SVG file of the category matches
// prefix_<n>.svg.
func (r *Renamer) Check(c Category) (CheckResult, error) {
	res := CheckResult{Category: c.Name}
	names, err := r.files(c)
	if err != nil {
		return res, err
	}
	res.Files = len(names)
	re := c.pattern()
	res.Conforming = true
	for _, name := range names {
		if !re.MatchString(name) {
			res.Conforming = false
			break
		}
	}
	return res, nil
}

// isCanonical reports whether names are exactly prefix_1..prefix_n.
func isCanonical(names []string, c Category) bool {
	re := c.pattern()
	seen := make(map[int]bool, len(names))
	for _, name := range names {
		m := re.FindStringSubmatch(name)
		if m == nil || (len(m[1]) > 1 && m[1][0] == '0') {
			return false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(names) || seen[n] {
			return false
		}
		seen[n] = true
	}
	return true
}

type CategorySummary struct {
	Category string
	Prefix   string
	Files    int
	Renamed  int
	Checked  bool
	Missing  bool

	// Conforming is only meaningful for checked categories.
	Conforming bool
	Err        error
}

type Summary struct {
	Categories []CategorySummary
	Total      int
}

// Run checks or renames each category and logs a summary. Missing category
// directories are skipped; failures in one category do not stop the others
// and are returned joined.
func (r *Renamer) Run(categories []Category) (Summary, error) {
	logger := r.conf.Logger
	var sum Summary

	fi, err := os.Stat(r.conf.Root)
	if err != nil {
		return sum, fmt.Errorf("sticker root: %w", err)
	}
	if !fi.IsDir() {
		return sum, fmt.Errorf("sticker root is not a directory: %s", r.conf.Root)
	}
	logger.Info("Sticker root", "dir", r.conf.Root)

	var errs []error
	for _, c := range categories {
		cs := CategorySummary{Category: c.Name, Prefix: c.Prefix, Checked: !c.Rename}
		_, err := os.Stat(r.dir(c))
		switch {
		case os.IsNotExist(err):
			cs.Missing = true
			logger.Warn("Category directory missing", "category", c.Name, "dir", r.dir(c))
		case err != nil:
			cs.Err = err
		case c.Rename:
			res, err := r.Rename(c)
			cs.Files, cs.Renamed, cs.Err = res.Files, res.Renamed, err
		default:
			res, err := r.Check(c)
			cs.Files, cs.Conforming, cs.Err = res.Files, res.Conforming, err
			if err == nil && res.Conforming {
				logger.Info("Names conform", "category", c.Name, "files", res.Files)
			} else if err == nil {
				logger.Warn("Names need checking", "category", c.Name, "files", res.Files)
			}
		}
		if cs.Err != nil {
			logger.Error("Category failed", "category", c.Name, "error", cs.Err)
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, cs.Err))
		}
		sum.Categories = append(sum.Categories, cs)
		sum.Total += cs.Files
	}

	for _, cs := range sum.Categories {
		if cs.Missing {
			continue
		}
		logger.Info("Summary", "category", cs.Category, "files", cs.Files, "names", fmt.Sprintf("%s_{1..%d}%s", cs.Prefix, cs.Files, ext))
	}
	logger.Info("Total", "files", sum.Total)
	return sum, errors.Join(errs...)
}
