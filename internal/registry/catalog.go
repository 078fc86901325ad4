package registry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"github.com/mesh-intelligence/toolbox/internal/widgets/calc"
	"github.com/mesh-intelligence/toolbox/internal/widgets/convert"
	"github.com/mesh-intelligence/toolbox/internal/widgets/dev"
	"github.com/mesh-intelligence/toolbox/internal/widgets/guidance"
	"github.com/mesh-intelligence/toolbox/internal/widgets/media"
	"github.com/mesh-intelligence/toolbox/internal/widgets/network"
	"github.com/mesh-intelligence/toolbox/internal/widgets/productivity"
	"github.com/mesh-intelligence/toolbox/internal/widgets/text"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Public API endpoints used when Deps leaves them empty.
const (
	DefaultRatesURL = "https://open.er-api.com/v6/latest"
	DefaultIPURL    = "https://ipapi.co"
)

// Deps are the collaborators the catalog wires into widgets.
type Deps struct {
	// Store backs the notes and planner tools. Without a store those tools
	// are left out of the catalog.
	Store Tables

	HTTPClient *http.Client
	RatesURL   string
	IPURL      string

	Now      func() time.Time
	Markdown goldmark.Markdown
}

func field(kind, name, label, def string, options ...string) types.Field {
	return types.Field{Name: name, Label: label, Kind: kind, Default: def, Options: options}
}

func required(f types.Field) types.Field {
	f.Required = true
	return f
}

func textField(name, label string) types.Field { return field(types.FieldText, name, label, "") }
func areaField(name, label string) types.Field { return field(types.FieldTextarea, name, label, "") }
func numberField(name, label, def string) types.Field {
	return field(types.FieldNumber, name, label, def)
}
func selectField(name, label, def string, options ...string) types.Field {
	return field(types.FieldSelect, name, label, def, options...)
}
func checkField(name, label string) types.Field { return field(types.FieldCheckbox, name, label, "") }
func dateField(name, label string) types.Field  { return field(types.FieldDate, name, label, "") }
func fileField(name, label string) types.Field  { return field(types.FieldFile, name, label, "") }

func unitTool(id, name, icon string, table convert.UnitTable, from, to string, related ...string) Entry {
	units := table.Symbols()
	return Entry{
		Tool: types.Tool{
			ID:          id,
			Name:        name,
			Icon:        icon,
			Category:    types.CategoryConverters,
			Description: fmt.Sprintf("Convert between %s units.", table.Name),
			Fields: []types.Field{
				required(numberField("value", "Value", "1")),
				selectField("from", "From", from, units...),
				selectField("to", "To", to, units...),
			},
			About:    fmt.Sprintf("Converts %s values through the base unit **%s**, so any chain of conversions gives the same answer as converting directly.", table.Name, table.Base),
			Steps:    []string{"Enter a value.", "Pick the unit you have and the unit you want.", "Read the converted value and the conversion factor."},
			Features: []string{fmt.Sprintf("%d units", len(units)), "Exact conversion factors", "Shows the per-unit factor"},
			Related:  related,
		},
		Widget: table.Widget(),
	}
}

// Catalog returns the built-in tool table wired to deps.
func Catalog(deps Deps) []Entry {
	if deps.HTTPClient == nil {
		deps.HTTPClient = http.DefaultClient
	}
	if deps.RatesURL == "" {
		deps.RatesURL = DefaultRatesURL
	}
	if deps.IPURL == "" {
		deps.IPURL = DefaultIPURL
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	entries := []Entry{
		// Converters.
		{
			Tool: types.Tool{
				ID:          "temperature-converter",
				Name:        "Temperature Converter",
				Icon:        "thermometer",
				Category:    types.CategoryConverters,
				Description: "Convert between Celsius, Fahrenheit and Kelvin.",
				Aliases:     []string{"temperature", "celsius-to-fahrenheit"},
				Fields: []types.Field{
					required(numberField("value", "Temperature", "100")),
					selectField("from", "From", convert.Celsius, convert.TemperatureScales...),
					selectField("to", "To", convert.Fahrenheit, convert.TemperatureScales...),
				},
				About:    "Every conversion passes through **Kelvin**. Results are shown with two decimals; values below absolute zero are rejected.",
				Steps:    []string{"Enter a temperature.", "Choose the source and target scales.", "Read the result and the value on every scale."},
				Features: []string{"Celsius, Fahrenheit and Kelvin", "Absolute zero check", "All scales at once"},
				Related:  []string{"length-converter", "weight-converter"},
			},
			Widget: convert.Temperature(),
		},
		unitTool("length-converter", "Length Converter", "ruler", convert.Length, "km", "mi", "weight-converter", "temperature-converter"),
		unitTool("weight-converter", "Weight Converter", "scale", convert.Weight, "kg", "lb", "length-converter", "bmi-calculator"),
		unitTool("data-size-converter", "Data Size Converter", "hard-drive", convert.DataSize, "GB", "GiB", "number-base-converter"),
		unitTool("time-converter", "Time Converter", "clock", convert.Time, "h", "min", "date-difference", "age-calculator"),
		{
			Tool: types.Tool{
				ID:          "number-base-converter",
				Name:        "Number Base Converter",
				Icon:        "binary",
				Category:    types.CategoryConverters,
				Description: "Convert integers between binary, octal, decimal, hex and any base up to 36.",
				Aliases:     []string{"binary-converter", "hex-converter"},
				Fields: []types.Field{
					required(textField("value", "Number")),
					numberField("from", "From base", "10"),
					numberField("to", "To base", "2"),
				},
				About:    "Works on integers of any length. Prefixes such as `0x` and `0b` are accepted for their base.",
				Steps:    []string{"Enter a whole number.", "Set the base it is written in and the base you want.", "Copy the result or any of the common bases."},
				Features: []string{"Bases 2 to 36", "Arbitrary precision", "Negative numbers"},
				Related:  []string{"roman-numeral-converter", "data-size-converter"},
			},
			Widget: convert.NumberBase(),
		},
		{
			Tool: types.Tool{
				ID:          "roman-numeral-converter",
				Name:        "Roman Numeral Converter",
				Icon:        "landmark",
				Category:    types.CategoryConverters,
				Description: "Convert numbers to Roman numerals and back.",
				Aliases:     []string{"roman-numerals"},
				Fields:      []types.Field{required(textField("value", "Number or numeral"))},
				About:       "Accepts 1 to 3999. Numerals must be in standard form: `IV`, not `IIII`.",
				Steps:       []string{"Enter a number or a numeral.", "The direction is detected automatically."},
				Features:    []string{"Both directions", "Strict validation"},
				Related:     []string{"number-base-converter"},
			},
			Widget: convert.Roman(),
		},
		{
			Tool: types.Tool{
				ID:          "currency-converter",
				Name:        "Currency Converter",
				Icon:        "banknote",
				Category:    types.CategoryConverters,
				Description: "Convert amounts with current exchange rates.",
				Aliases:     []string{"currency", "exchange-rates"},
				Fields: []types.Field{
					numberField("amount", "Amount", "1"),
					textField("from", "From (ISO code)"),
					textField("to", "To (ISO code)"),
				},
				About:    "Rates come from a public exchange rate service, fetched once per conversion. Codes are three-letter ISO 4217 codes such as `USD` or `EUR`.",
				Steps:    []string{"Enter an amount.", "Enter the currency codes.", "Convert to fetch the latest rate."},
				Features: []string{"Daily reference rates", "Shows the rate used", "No account needed"},
				Related:  []string{"percentage-calculator", "tip-calculator"},
			},
			Widget: convert.NewCurrency(deps.HTTPClient, deps.RatesURL),
		},

		// Text.
		{
			Tool: types.Tool{
				ID:          "case-converter",
				Name:        "Case Converter",
				Icon:        "case-sensitive",
				Category:    types.CategoryText,
				Description: "Change text to upper, lower, title, sentence, camel, snake or kebab case.",
				Fields: []types.Field{
					required(areaField("text", "Text")),
					selectField("mode", "Case", text.CaseUpper, text.CaseModes...),
				},
				Steps:    []string{"Paste your text.", "Pick a case.", "Copy the result."},
				Features: []string{"Seven cases", "Unicode aware", "Splits camelCase words"},
				Related:  []string{"slug-generator", "whitespace-remover"},
			},
			Widget: text.CaseConverter(),
		},
		{
			Tool: types.Tool{
				ID:          "duplicate-line-remover",
				Name:        "Duplicate Line Remover",
				Icon:        "list-x",
				Category:    types.CategoryText,
				Description: "Remove repeated lines, keeping the first occurrence.",
				Aliases:     []string{"remove-duplicates"},
				Fields: []types.Field{
					required(areaField("text", "Text")),
					checkField("trim", "Ignore surrounding spaces"),
					checkField("ignore_case", "Ignore case"),
				},
				Steps:    []string{"Paste a list.", "Choose how lines compare.", "Copy the cleaned list."},
				Features: []string{"Keeps original order", "Reports lines removed", "Case-insensitive option"},
				Related:  []string{"whitespace-remover", "word-counter"},
			},
			Widget: text.DuplicateLineRemover(),
		},
		{
			Tool: types.Tool{
				ID:          "whitespace-remover",
				Name:        "Whitespace Remover",
				Icon:        "space",
				Category:    types.CategoryText,
				Description: "Trim lines, collapse spaces and drop blank lines.",
				Fields: []types.Field{
					required(areaField("text", "Text")),
					checkField("trim", "Trim each line"),
					checkField("collapse", "Collapse repeated spaces"),
					checkField("blank_lines", "Remove blank lines"),
					checkField("all", "Remove all whitespace"),
				},
				About:    "With no option selected, lines are trimmed and runs of spaces collapsed.",
				Steps:    []string{"Paste text.", "Select the cleanups.", "Copy the result."},
				Features: []string{"Tabs and non-breaking spaces", "Running it twice changes nothing"},
				Related:  []string{"duplicate-line-remover", "case-converter"},
			},
			Widget: text.WhitespaceRemover(),
		},
		{
			Tool: types.Tool{
				ID:          "word-counter",
				Name:        "Word Counter",
				Icon:        "hash",
				Category:    types.CategoryText,
				Description: "Count words, characters, sentences and reading time.",
				Aliases:     []string{"character-counter"},
				Fields:      []types.Field{areaField("text", "Text")},
				Steps:       []string{"Paste or type text.", "Read the counts."},
				Features:    []string{"Characters with and without spaces", "Sentences and paragraphs", "Reading time"},
				Related:     []string{"text-reverser", "duplicate-line-remover"},
			},
			Widget: text.WordCounter(),
		},
		{
			Tool: types.Tool{
				ID:          "text-reverser",
				Name:        "Text Reverser",
				Icon:        "arrow-left-right",
				Category:    types.CategoryText,
				Description: "Reverse text by characters, words or lines.",
				Fields: []types.Field{
					required(areaField("text", "Text")),
					selectField("mode", "Reverse", text.ReverseChars, text.ReverseChars, text.ReverseWords, text.ReverseLines),
				},
				Steps:   []string{"Enter text.", "Choose what to reverse."},
				Related: []string{"case-converter", "word-counter"},
			},
			Widget: text.Reverser(),
		},
		{
			Tool: types.Tool{
				ID:          "slug-generator",
				Name:        "Slug Generator",
				Icon:        "link",
				Category:    types.CategoryText,
				Description: "Turn a title into a URL-friendly slug.",
				Fields: []types.Field{
					required(textField("text", "Title")),
					selectField("separator", "Separator", "hyphen", "hyphen", "underscore"),
					numberField("max_length", "Maximum length", ""),
				},
				About:    "Accents are stripped (`Crème` becomes `creme`) and everything except letters and digits becomes a separator.",
				Steps:    []string{"Enter a title.", "Pick a separator.", "Copy the slug."},
				Features: []string{"Accent folding", "Length limit"},
				Related:  []string{"case-converter", "url-encoder"},
			},
			Widget: text.SlugGenerator(),
		},
		{
			Tool: types.Tool{
				ID:          "lorem-ipsum-generator",
				Name:        "Lorem Ipsum Generator",
				Icon:        "pilcrow",
				Category:    types.CategoryText,
				Description: "Generate placeholder paragraphs, sentences or words.",
				Aliases:     []string{"lorem-ipsum"},
				Fields: []types.Field{
					numberField("count", "How many", "3"),
					selectField("unit", "Unit", text.LoremParagraphs, text.LoremParagraphs, text.LoremSentences, text.LoremWords),
				},
				Steps:   []string{"Choose an amount and unit.", "Copy the text."},
				Related: []string{"word-counter"},
			},
			Widget: text.LoremGenerator(),
		},
		{
			Tool: types.Tool{
				ID:          "text-diff",
				Name:        "Text Diff",
				Icon:        "git-compare",
				Category:    types.CategoryText,
				Description: "Compare two texts and show a unified diff.",
				Aliases:     []string{"diff-checker"},
				Fields: []types.Field{
					areaField("original", "Original"),
					areaField("changed", "Changed"),
				},
				Steps:    []string{"Paste the original text.", "Paste the changed text.", "Review added and removed lines."},
				Features: []string{"Unified diff format", "Three lines of context", "Line counts"},
				Related:  []string{"json-formatter", "duplicate-line-remover"},
			},
			Widget: text.TextDiff(),
		},
		{
			Tool: types.Tool{
				ID:          "markdown-previewer",
				Name:        "Markdown Previewer",
				Icon:        "file-text",
				Category:    types.CategoryText,
				Description: "Render GitHub-flavoured markdown to HTML.",
				Aliases:     []string{"markdown"},
				Fields:      []types.Field{required(areaField("markdown", "Markdown"))},
				About:       "Supports tables, task lists, strikethrough and autolinks. Raw HTML in the source is not rendered.",
				Steps:       []string{"Write markdown.", "Preview the result and copy the HTML."},
				Related:     []string{"html-to-text", "code-highlighter"},
			},
			Widget: text.MarkdownPreviewer(deps.Markdown),
		},
		{
			Tool: types.Tool{
				ID:          "html-to-text",
				Name:        "HTML to Text",
				Icon:        "code-xml",
				Category:    types.CategoryText,
				Description: "Extract readable text and links from HTML.",
				Fields:      []types.Field{required(areaField("html", "HTML"))},
				Steps:       []string{"Paste HTML source.", "Copy the plain text or the extracted links."},
				Features:    []string{"Drops scripts and styles", "Keeps paragraph breaks", "Lists links"},
				Related:     []string{"markdown-previewer", "whitespace-remover"},
			},
			Widget: text.HTMLToTextTool(),
		},
		{
			Tool: types.Tool{
				ID:          "base64-encoder",
				Name:        "Base64 Encoder",
				Icon:        "binary",
				Category:    types.CategoryText,
				Description: "Encode text to Base64 or decode it back.",
				Aliases:     []string{"base64"},
				Fields: []types.Field{
					required(areaField("text", "Text")),
					selectField("mode", "Mode", text.Encode, text.Encode, text.Decode),
					checkField("url_safe", "URL-safe alphabet"),
				},
				Steps:   []string{"Enter text.", "Choose encode or decode."},
				Related: []string{"url-encoder", "jwt-decoder"},
			},
			Widget: text.Base64Encoder(),
		},
		{
			Tool: types.Tool{
				ID:          "url-encoder",
				Name:        "URL Encoder",
				Icon:        "link-2",
				Category:    types.CategoryText,
				Description: "Percent-encode or decode URL components.",
				Fields: []types.Field{
					required(areaField("text", "Text")),
					selectField("mode", "Mode", text.Encode, text.Encode, text.Decode),
					selectField("component", "Component", "query", "query", "path"),
				},
				Steps:   []string{"Enter text.", "Choose the component and direction."},
				Related: []string{"base64-encoder", "slug-generator"},
			},
			Widget: text.URLEncoder(),
		},

		// Developer.
		{
			Tool: types.Tool{
				ID:          "jwt-decoder",
				Name:        "JWT Decoder",
				Icon:        "key-round",
				Category:    types.CategoryDeveloper,
				Description: "Decode a JSON Web Token's header and claims.",
				Aliases:     []string{"jwt"},
				Fields:      []types.Field{required(areaField("token", "Token"))},
				About:       "Decoding happens locally. The signature is **not** verified; the status reflects only the `exp` and `nbf` claims.",
				Steps:       []string{"Paste a token.", "Inspect the header, payload and timestamps."},
				Features:    []string{"Expiry status", "Readable timestamps", "Accepts a Bearer prefix"},
				Related:     []string{"base64-encoder", "json-formatter"},
			},
			Widget: dev.JWTDecoder{Now: deps.Now},
		},
		{
			Tool: types.Tool{
				ID:          "regex-tester",
				Name:        "Regex Tester",
				Icon:        "regex",
				Category:    types.CategoryDeveloper,
				Description: "Test a regular expression against text and preview replacements.",
				Aliases:     []string{"regex"},
				Fields: []types.Field{
					required(textField("pattern", "Pattern")),
					textField("flags", "Flags (i, m, s)"),
					areaField("text", "Test text"),
					checkField("replace", "Replace matches"),
					textField("replacement", "Replacement"),
				},
				About:    "Uses RE2 syntax. Replacements may reference groups as `$1` or `${name}`.",
				Steps:    []string{"Enter a pattern and flags.", "Paste test text.", "Review matches and groups."},
				Features: []string{"Match offsets", "Capture groups", "Replace preview"},
				Related:  []string{"text-diff", "json-formatter"},
			},
			Widget: dev.RegexTester(),
		},
		{
			Tool: types.Tool{
				ID:          "json-formatter",
				Name:        "JSON Formatter",
				Icon:        "braces",
				Category:    types.CategoryDeveloper,
				Description: "Format, minify or validate JSON.",
				Aliases:     []string{"json"},
				Fields: []types.Field{
					required(areaField("json", "JSON")),
					selectField("mode", "Mode", dev.JSONFormat, dev.JSONFormat, dev.JSONMinify, dev.JSONValidate),
					selectField("indent", "Indent", "2", "2", "4", "tab"),
				},
				Steps:    []string{"Paste JSON.", "Choose format, minify or validate."},
				Features: []string{"Keeps key order", "Error line and column"},
				Related:  []string{"yaml-json-converter", "jwt-decoder"},
			},
			Widget: dev.JSONFormatter(),
		},
		{
			Tool: types.Tool{
				ID:          "yaml-json-converter",
				Name:        "YAML ⇄ JSON",
				Icon:        "file-json",
				Category:    types.CategoryDeveloper,
				Description: "Convert YAML to JSON and JSON to YAML.",
				Aliases:     []string{"yaml-to-json"},
				Fields: []types.Field{
					required(areaField("source", "Source")),
					selectField("direction", "Direction", dev.YAMLToJSON, dev.YAMLToJSON, dev.JSONToYAML),
				},
				Steps:   []string{"Paste YAML or JSON.", "Choose the direction."},
				Related: []string{"json-formatter"},
			},
			Widget: dev.YAMLJSONConverter(),
		},
		{
			Tool: types.Tool{
				ID:          "uuid-generator",
				Name:        "UUID Generator",
				Icon:        "fingerprint",
				Category:    types.CategoryDeveloper,
				Description: "Generate random (v4) or time-ordered (v7) UUIDs.",
				Aliases:     []string{"uuid"},
				Fields: []types.Field{
					selectField("version", "Version", "4", "4", "7"),
					numberField("count", "How many", "1"),
					checkField("uppercase", "Uppercase"),
					checkField("no_hyphens", "Without hyphens"),
				},
				Steps:   []string{"Pick a version and count.", "Copy the identifiers."},
				Related: []string{"ulid-generator", "password-generator"},
			},
			Widget: dev.UUIDGenerator(),
		},
		{
			Tool: types.Tool{
				ID:          "ulid-generator",
				Name:        "ULID Generator",
				Icon:        "list-ordered",
				Category:    types.CategoryDeveloper,
				Description: "Generate sortable ULIDs.",
				Fields:      []types.Field{numberField("count", "How many", "1")},
				About:       "ULIDs sort by creation time. Identifiers generated together are strictly increasing.",
				Related:     []string{"uuid-generator"},
			},
			Widget: dev.ULIDGenerator(),
		},
		{
			Tool: types.Tool{
				ID:          "hash-generator",
				Name:        "Hash Generator",
				Icon:        "shield-check",
				Category:    types.CategoryDeveloper,
				Description: "Compute MD5, SHA-1, SHA-256 and SHA-512 digests of text or a file.",
				Aliases:     []string{"checksum"},
				Fields: []types.Field{
					areaField("text", "Text"),
					fileField("file", "Or a file"),
					selectField("algorithm", "Highlight", "SHA-256", dev.HashAlgorithms...),
					checkField("uppercase", "Uppercase hex"),
				},
				Steps:   []string{"Enter text or choose a file.", "Copy the digest you need."},
				Related: []string{"password-generator", "base64-encoder"},
			},
			Widget: dev.HashGenerator(),
		},
		{
			Tool: types.Tool{
				ID:          "password-generator",
				Name:        "Password Generator",
				Icon:        "lock",
				Category:    types.CategoryDeveloper,
				Description: "Generate strong random passwords.",
				Aliases:     []string{"password"},
				Fields: []types.Field{
					numberField("length", "Length", "16"),
					checkField("lower", "Lowercase"),
					checkField("upper", "Uppercase"),
					checkField("digits", "Digits"),
					checkField("symbols", "Symbols"),
					checkField("exclude_ambiguous", "Avoid look-alike characters"),
				},
				About:    "Passwords are drawn from the operating system's secure random source and include at least one character from every selected set.",
				Steps:    []string{"Choose a length and character sets.", "Generate and copy."},
				Features: []string{"Entropy estimate", "Look-alike exclusion"},
				Related:  []string{"hash-generator", "uuid-generator"},
			},
			Widget: dev.PasswordGenerator(),
		},
		{
			Tool: types.Tool{
				ID:          "code-highlighter",
				Name:        "Code Highlighter",
				Icon:        "code",
				Category:    types.CategoryDeveloper,
				Description: "Syntax-highlight source code as HTML.",
				Fields: []types.Field{
					required(areaField("code", "Code")),
					textField("language", "Language (blank to detect)"),
					selectField("style", "Style", dev.DefaultHighlightStyle, dev.HighlightStyles...),
					checkField("line_numbers", "Line numbers"),
				},
				Steps:   []string{"Paste code.", "Pick a language and style.", "Copy the HTML."},
				Related: []string{"markdown-previewer", "json-formatter"},
			},
			Widget: dev.CodeHighlighter(),
		},

		// Calculators.
		{
			Tool: types.Tool{
				ID:          "age-calculator",
				Name:        "Age Calculator",
				Icon:        "cake",
				Category:    types.CategoryCalculators,
				Description: "Calculate an exact age in years, months and days.",
				Aliases:     []string{"age"},
				Fields: []types.Field{
					required(dateField("birthdate", "Date of birth")),
					dateField("on", "Age on (default today)"),
				},
				Steps:   []string{"Enter a birth date.", "Optionally pick another reference date."},
				Related: []string{"date-difference"},
			},
			Widget: calc.Age{Now: deps.Now},
		},
		{
			Tool: types.Tool{
				ID:          "date-difference",
				Name:        "Date Difference",
				Icon:        "calendar-range",
				Category:    types.CategoryCalculators,
				Description: "Count the days, weeks and business days between two dates.",
				Aliases:     []string{"days-between-dates"},
				Fields: []types.Field{
					required(dateField("start", "Start date")),
					required(dateField("end", "End date")),
					checkField("include_end", "Include end date"),
				},
				Steps:   []string{"Pick two dates.", "Read the difference."},
				Related: []string{"age-calculator", "time-converter"},
			},
			Widget: calc.DateDifference(),
		},
		{
			Tool: types.Tool{
				ID:          "bmi-calculator",
				Name:        "BMI Calculator",
				Icon:        "activity",
				Category:    types.CategoryCalculators,
				Description: "Calculate body mass index from weight and height.",
				Aliases:     []string{"bmi"},
				Fields: []types.Field{
					selectField("units", "Units", calc.Metric, calc.Metric, calc.Imperial),
					required(numberField("weight", "Weight (kg or lb)", "")),
					required(numberField("height", "Height (cm or in)", "")),
				},
				About:   "BMI is a screening measure for adults and does not account for build or age.",
				Steps:   []string{"Choose units.", "Enter weight and height."},
				Related: []string{"weight-converter"},
			},
			Widget: calc.BMICalculator(),
		},
		{
			Tool: types.Tool{
				ID:          "percentage-calculator",
				Name:        "Percentage Calculator",
				Icon:        "percent",
				Category:    types.CategoryCalculators,
				Description: "Work out percentages, ratios and percentage change.",
				Aliases:     []string{"percentage"},
				Fields: []types.Field{
					selectField("mode", "Question", calc.PercentOf, calc.PercentOf, calc.PercentIs, calc.PercentChange),
					required(numberField("x", "X", "")),
					required(numberField("y", "Y", "")),
				},
				About:   "`of`: X% of Y. `is`: X is what percent of Y. `change`: percent change from X to Y.",
				Related: []string{"tip-calculator", "loan-calculator"},
			},
			Widget: calc.PercentageCalculator(),
		},
		{
			Tool: types.Tool{
				ID:          "loan-calculator",
				Name:        "Loan Calculator",
				Icon:        "landmark",
				Category:    types.CategoryCalculators,
				Description: "Monthly payment, total interest and amortisation schedule.",
				Aliases:     []string{"mortgage-calculator"},
				Fields: []types.Field{
					required(numberField("amount", "Loan amount", "")),
					required(numberField("rate", "Annual interest rate (%)", "")),
					numberField("years", "Term (years)", ""),
					numberField("months", "Additional months", ""),
				},
				Steps:    []string{"Enter the amount and rate.", "Enter the term.", "Download the schedule as CSV."},
				Features: []string{"Fixed-rate amortisation", "CSV schedule"},
				Related:  []string{"percentage-calculator", "currency-converter"},
			},
			Widget: calc.LoanCalculator(),
		},
		{
			Tool: types.Tool{
				ID:          "tip-calculator",
				Name:        "Tip Calculator",
				Icon:        "receipt",
				Category:    types.CategoryCalculators,
				Description: "Split a bill with tip between people.",
				Aliases:     []string{"tip"},
				Fields: []types.Field{
					required(numberField("bill", "Bill", "")),
					numberField("percent", "Tip (%)", "15"),
					numberField("people", "People", "1"),
				},
				Related: []string{"percentage-calculator"},
			},
			Widget: calc.TipCalculator(),
		},

		// Images and codes.
		{
			Tool: types.Tool{
				ID:          "barcode-generator",
				Name:        "Barcode Generator",
				Icon:        "barcode",
				Category:    types.CategoryMedia,
				Description: "Create Code 128 barcodes as PNG images.",
				Aliases:     []string{"barcode"},
				Fields: []types.Field{
					required(textField("text", "Content")),
					numberField("width", "Width (px)", "300"),
					numberField("height", "Height (px)", "100"),
				},
				Steps:   []string{"Enter the content.", "Set the size.", "Download the PNG."},
				Related: []string{"qr-code-generator"},
			},
			Widget: media.NewBarcode(),
		},
		{
			Tool: types.Tool{
				ID:          "qr-code-generator",
				Name:        "QR Code Generator",
				Icon:        "qr-code",
				Category:    types.CategoryMedia,
				Description: "Create QR codes for links and text.",
				Aliases:     []string{"qr-code"},
				Fields: []types.Field{
					required(areaField("text", "Content")),
					selectField("level", "Error correction", "M", "L", "M", "Q", "H"),
					numberField("size", "Size (px)", "256"),
				},
				About:   "Higher error correction survives more damage but holds less data.",
				Related: []string{"barcode-generator"},
			},
			Widget: media.QRCode(),
		},
		{
			Tool: types.Tool{
				ID:          "image-resizer",
				Name:        "Image Resizer",
				Icon:        "image",
				Category:    types.CategoryMedia,
				Description: "Resize PNG, JPEG, GIF or WebP images.",
				Aliases:     []string{"resize-image"},
				Fields: []types.Field{
					required(fileField("image", "Image")),
					numberField("width", "Width (px)", ""),
					numberField("height", "Height (px)", ""),
					selectField("format", "Output format", media.FormatPNG, media.FormatPNG, media.FormatJPEG),
					numberField("quality", "JPEG quality", "90"),
				},
				About:    "Leave width or height empty to keep the aspect ratio. The image is processed on the server and not stored.",
				Steps:    []string{"Choose an image.", "Enter the new size.", "Download the result."},
				Features: []string{"High-quality resampling", "PNG or JPEG output"},
				Related:  []string{"background-remover"},
			},
			Widget: media.ImageResizer(),
		},
		{
			Tool: types.Tool{
				ID:          "csv-to-excel",
				Name:        "CSV to Excel",
				Icon:        "sheet",
				Category:    types.CategoryMedia,
				Description: "Convert CSV data to an Excel workbook.",
				Aliases:     []string{"csv-to-xlsx"},
				Fields: []types.Field{
					areaField("csv", "CSV text"),
					fileField("file", "Or a CSV file"),
					selectField("delimiter", "Delimiter", "comma", "comma", "semicolon", "tab", "pipe"),
					checkField("header", "First row is a header"),
					textField("sheet", "Sheet name"),
				},
				Steps:    []string{"Paste CSV or choose a file.", "Pick the delimiter.", "Download the workbook."},
				Features: []string{"Numbers stored as numbers", "Bold frozen header"},
				Related:  []string{"json-formatter"},
			},
			Widget: media.CSVToExcel(),
		},

		// Network.
		{
			Tool: types.Tool{
				ID:          "ip-lookup",
				Name:        "IP Lookup",
				Icon:        "globe",
				Category:    types.CategoryNetwork,
				Description: "Find the approximate location and network of an IP address.",
				Aliases:     []string{"what-is-my-ip"},
				Fields:      []types.Field{textField("ip", "IP address (blank for your own)")},
				About:       "Looks up the address with a public geolocation service, one request per lookup. Locations are approximate.",
				Related:     []string{"currency-converter"},
			},
			Widget: network.NewIPLookup(deps.HTTPClient, deps.IPURL),
		},

		// Guides.
		{
			Tool: types.Tool{
				ID:          "social-media-downloader",
				Name:        "Social Media Downloader",
				Icon:        "download",
				Category:    types.CategoryGuides,
				Description: "How to save videos and posts using each platform's own tools.",
				Fields:      []types.Field{textField("url", "Post URL (optional)")},
				About:       "This tool does not download anything. It points to each platform's official download or archive feature.",
				Guidance:    true,
			},
			Widget: guidance.SocialMediaDownloader(),
		},
		{
			Tool: types.Tool{
				ID:          "background-remover",
				Name:        "Background Remover",
				Icon:        "eraser",
				Category:    types.CategoryGuides,
				Description: "Steps to remove an image background with a free editor.",
				About:       "This tool does not process images. It describes how to do it in a desktop editor.",
				Guidance:    true,
				Related:     []string{"image-resizer"},
			},
			Widget: guidance.BackgroundRemover(),
		},
	}

	if deps.Store != nil {
		entries = append(entries,
			Entry{
				Tool: types.Tool{
					ID:          "notes",
					Name:        "Notes",
					Icon:        "notebook-pen",
					Category:    types.CategoryProductivity,
					Description: "Keep short notes on this machine.",
					Fields: []types.Field{
						selectField("action", "Action", productivity.ActionList, productivity.ActionList, productivity.ActionAdd, productivity.ActionUpdate, productivity.ActionDelete),
						textField("id", "Note id (update, delete)"),
						textField("title", "Title"),
						areaField("body", "Body"),
					},
					About:   "Notes are saved in the local data directory.",
					Related: []string{"planner"},
				},
				Widget: productivity.NewNotes(deps.Store),
			},
			Entry{
				Tool: types.Tool{
					ID:          "planner",
					Name:        "Planner",
					Icon:        "list-checks",
					Category:    types.CategoryProductivity,
					Description: "A to-do list with due dates.",
					Aliases:     []string{"todo"},
					Fields: []types.Field{
						selectField("action", "Action", productivity.ActionList, productivity.ActionList, productivity.ActionAdd, productivity.ActionToggle, productivity.ActionDelete),
						textField("id", "Task id (toggle, delete)"),
						textField("title", "Task"),
						dateField("due", "Due date"),
					},
					About:   "Open tasks are listed first, soonest due date first. Tasks are saved in the local data directory.",
					Related: []string{"notes", "date-difference"},
				},
				Widget: &productivity.Planner{Store: deps.Store, Now: deps.Now},
			},
		)
	}
	return entries
}

// Default builds a registry holding the full catalog.
func Default(deps Deps) (*Registry, error) {
	r := New()
	for _, e := range Catalog(deps) {
		if err := r.Register(e.Tool, e.Widget); err != nil {
			return nil, err
		}
	}
	return r, nil
}
