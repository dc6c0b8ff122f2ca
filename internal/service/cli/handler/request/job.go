package request

import (
	"errors"
	"flag"

	jsoniter "github.com/json-iterator/go"

	"github.com/reusedev/anymotion-cli/tools"
)

var (
	ErrRuleJSON   = errors.New("Rule format is invalid. Must be in JSON format.")
	ErrRuleFormat = errors.New("Rule format is invalid. Must be in list or object format.")
)

type Extract struct {
	ImageID     int
	MovieID     int
	Path        string
	WithDrawing bool
}

func (e *Extract) Bind(fs *flag.FlagSet) {
	fs.IntVar(&e.ImageID, "image-id", 0, "extract keypoints from an uploaded image")
	fs.IntVar(&e.MovieID, "movie-id", 0, "extract keypoints from an uploaded movie")
	fs.StringVar(&e.Path, "path", "", "upload a local image or movie and extract keypoints from it")
	fs.BoolVar(&e.WithDrawing, "with-drawing", false, "draw the keypoints once extraction succeeds")
}

func (e *Extract) Valid() error {
	n := 0
	for _, set := range []bool{e.ImageID != 0, e.MovieID != 0, e.Path != ""} {
		if set {
			n++
		}
	}
	if n != 1 {
		return errors.New(`exactly one of "image-id", "movie-id" and "path" options is required`)
	}
	if e.ImageID < 0 || e.MovieID < 0 {
		return errors.New("id must be a positive integer")
	}
	return nil
}

// Drawing options shared by draw, download and extract --with-drawing.
type Drawing struct {
	Out       string
	Force     bool
	Thumbnail bool
}

func (d *Drawing) Bind(fs *flag.FlagSet) {
	fs.StringVar(&d.Out, "out", "", "file or directory to save the drawing to")
	fs.BoolVar(&d.Force, "force", false, "overwrite an existing file without asking")
	fs.BoolVar(&d.Thumbnail, "thumbnail", false, "also save a scaled-down copy of drawn images")
}

type Draw struct {
	Drawing
	Rule       string
	RuleFile   string
	NoDownload bool
}

func (d *Draw) Bind(fs *flag.FlagSet) {
	d.Drawing.Bind(fs)
	fs.StringVar(&d.Rule, "rule", "", "drawing rules in JSON format")
	fs.StringVar(&d.RuleFile, "rule-file", "", "drawing rules file in JSON format")
	fs.BoolVar(&d.NoDownload, "no-download", false, "do not download the drawn file")
}

func (d *Draw) Valid() error {
	if d.Rule != "" && d.RuleFile != "" {
		return errors.New(`"rule" and "rule-file" options cannot be used at the same time.`)
	}
	return nil
}

// LoadRule returns nil when no rule was given.
func (d *Draw) LoadRule() (any, error) {
	return loadRule(d.Rule, d.RuleFile)
}

type Analyze struct {
	Rule       string
	RuleFile   string
	ShowResult bool
}

func (a *Analyze) Bind(fs *flag.FlagSet) {
	fs.StringVar(&a.Rule, "rule", "", "analysis rules in JSON format")
	fs.StringVar(&a.RuleFile, "rule-file", "", "analysis rules file in JSON format")
	fs.BoolVar(&a.ShowResult, "show-result", false, "print the analysis result when it succeeds")
}

func (a *Analyze) Valid() error {
	switch {
	case a.Rule != "" && a.RuleFile != "":
		return errors.New(`"rule" and "rule-file" options cannot be used at the same time.`)
	case a.Rule == "" && a.RuleFile == "":
		return errors.New(`Either "rule" or "rule-file" options is required.`)
	}
	return nil
}

func (a *Analyze) LoadRule() (any, error) {
	return loadRule(a.Rule, a.RuleFile)
}

func loadRule(rule, file string) (any, error) {
	if file != "" {
		data, err := tools.ReadFile(file)
		if err != nil {
			return nil, err
		}
		rule = string(data)
	}
	if rule == "" {
		return nil, nil
	}
	return ParseRule(rule)
}

// ParseRule accepts a JSON array or object.
func ParseRule(text string) (any, error) {
	var rule any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(text, &rule); err != nil {
		return nil, ErrRuleJSON
	}
	switch rule.(type) {
	case []any, map[string]any:
		return rule, nil
	}
	return nil, ErrRuleFormat
}
