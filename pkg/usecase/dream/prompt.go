package dream

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/m-mizutani/dreamlog/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/system.md
var systemPrompt string

//go:embed prompt/meta.md
var metaPromptRaw string

//go:embed prompt/illustrate.md
var illustratePromptRaw string

var (
	metaPromptTmpl       = template.Must(template.New("meta").Parse(metaPromptRaw))
	illustratePromptTmpl = template.Must(template.New("illustrate").Parse(illustratePromptRaw))
)

type promptInput struct {
	Entries      []model.Entry
	MetaAnalysis string
}

func render(tmpl *template.Template, input promptInput) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, input); err != nil {
		return "", goerr.Wrap(err, "failed to execute prompt template", goerr.V("template", tmpl.Name()))
	}
	return buf.String(), nil
}
