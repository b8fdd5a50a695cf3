package treads

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/brandquad/treads/assets"
	"golang.org/x/text/encoding/charmap"
)

var defaultDecoder = charmap.Windows1251.NewDecoder()

type namePattern struct {
	Name string
	Re   *regexp.Regexp
}

// patterns compiles name/alternation pairs. Go's \b only knows ASCII word
// characters, so boundaries are spelled out to cover Cyrillic names too.
func patterns(pairs ...string) []namePattern {
	out := make([]namePattern, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		re := regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(` + pairs[i+1] + `)(?:$|[^\p{L}\p{N}])`)
		out = append(out, namePattern{Name: pairs[i], Re: re})
	}
	return out
}

// Order matters: the first match wins, so compound names precede their parts.
var garmentTypes = patterns(
	"t-shirt", `t-?shirts?|tees?|футболк\p{L}*`,
	"tank-top", `tank-?tops?|майк\p{L}*`,
	"hoodie", `hood(ie|y)s?|худи`,
	"cardigan", `cardigans?|кардиган\p{L}*`,
	"blazer", `blazers?|пиджак\p{L}*`,
	"sweater", `sweaters?|jumpers?|свитер\p{L}*`,
	"jacket", `jackets?|куртк\p{L}*`,
	"coat", `coats?|пальто`,
	"dress", `dress(es)?|плать\p{L}*`,
	"skirt", `skirts?|юбк\p{L}*`,
	"jeans", `jeans|джинс\p{L}*`,
	"shorts", `shorts|шорт\p{L}*`,
	"pants", `pants|trousers|брюк\p{L}*|штан\p{L}*`,
	"suit", `suits?|костюм\p{L}*`,
	"polo", `polos?|поло`,
	"shirt", `shirts?|рубашк\p{L}*`,
)

var materials = patterns(
	"cotton", `cotton|хлоп\p{L}*`,
	"denim", `denim|jeans|деним\p{L}*|джинс\p{L}*`,
	"silk", `silk|satin|ш[её]лк\p{L}*|атлас\p{L}*`,
	"wool", `wool(en)?|merino|шерст\p{L}*`,
	"polyester", `polyester|synthetic|полиэстер\p{L}*|синтетик\p{L}*`,
	"leather", `leather|кож\p{L}*`,
	"linen", `linen|л[её]н|льнян\p{L}*`,
	"cashmere", `cashmere|кашемир\p{L}*`,
)

var colorAliases = map[string]string{"grey": "gray"}

// Cyrillic color words, matched against whole words.
var cyrillicColors = []namePattern{
	{Name: "red", Re: regexp.MustCompile(`^красн\p{L}*$`)},
	{Name: "green", Re: regexp.MustCompile(`^зел[её]н\p{L}*$`)},
	{Name: "blue", Re: regexp.MustCompile(`^син(ий|яя|ее|ие|его|ей)$|^голуб\p{L}*$`)},
	{Name: "yellow", Re: regexp.MustCompile(`^ж[её]лт\p{L}*$`)},
	{Name: "purple", Re: regexp.MustCompile(`^фиолетов\p{L}*$`)},
	{Name: "orange", Re: regexp.MustCompile(`^оранжев\p{L}*$`)},
	{Name: "pink", Re: regexp.MustCompile(`^розов\p{L}*$`)},
	{Name: "brown", Re: regexp.MustCompile(`^коричнев\p{L}*$`)},
	{Name: "black", Re: regexp.MustCompile(`^ч[её]рн\p{L}*$`)},
	{Name: "white", Re: regexp.MustCompile(`^бел(ый|ая|ое|ые|ого|ой)$`)},
	{Name: "gray", Re: regexp.MustCompile(`^сер(ый|ая|ое|ые|ого|ой)$`)},
	{Name: "beige", Re: regexp.MustCompile(`^беж\p{L}*$`)},
	{Name: "maroon", Re: regexp.MustCompile(`^бордов\p{L}*$`)},
}

// decodeName undoes URL escaping and Windows-1251 encoding in uploaded names.
func decodeName(in string) string {
	if strings.Contains(in, "%") {
		if unescaped, err := url.QueryUnescape(in); err == nil && len(unescaped) > 0 {
			in = unescaped
		}
	}
	if !utf8.ValidString(in) {
		if out, err := defaultDecoder.String(in); err == nil {
			in = out
		}
	}
	return in
}

// DisplayName is the readable base name of an uploaded file.
func DisplayName(filename string) string {
	return path.Base(decodeName(filename))
}

// normalizeName lower-cases name, drops its extension and turns every rune
// that is not a letter, digit or hyphen into a space.
func normalizeName(name string) string {
	name = DisplayName(name)
	name = strings.TrimSuffix(name, path.Ext(name))
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return unicode.ToLower(r)
		}
		return ' '
	}, name)
}

func firstMatch(in string, list []namePattern) string {
	for _, p := range list {
		if p.Re.MatchString(in) {
			return p.Name
		}
	}
	return ""
}

// GuessAttributes guesses garment type, material and colors from a file name.
func GuessAttributes(filename string) Attributes {
	name := normalizeName(filename)

	attrs := Attributes{
		Type:     firstMatch(name, garmentTypes),
		Material: firstMatch(name, materials),
	}

	known := make(map[string]bool, len(assets.NamedColors))
	for _, c := range assets.NamedColors {
		known[c.Name] = true
	}
	seen := make(map[string]bool)
	for _, word := range strings.Fields(strings.ReplaceAll(name, "-", " ")) {
		if alias, ok := colorAliases[word]; ok {
			word = alias
		} else if c := firstMatch(word, cyrillicColors); c != "" {
			word = c
		}
		if known[word] && !seen[word] {
			seen[word] = true
			attrs.Colors = append(attrs.Colors, word)
		}
	}
	return attrs
}
