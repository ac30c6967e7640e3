package docx

import "strconv"

// ListKind selects the abstract numbering a list instance derives from.
type ListKind int

const (
	BulletList ListKind = iota
	DecimalList
)

// Numbering instances referenced by the ListBullet and ListNumber styles.
const (
	BulletNumID  = 1
	DecimalNumID = 2
)

type numInstance struct {
	id   int
	kind ListKind
}

// numbering models word/numbering.xml: two abstract definitions and one
// concrete instance per list.
type numbering struct {
	instances []numInstance
}

func newNumbering() numbering {
	return numbering{instances: []numInstance{
		{id: BulletNumID, kind: BulletList},
		{id: DecimalNumID, kind: DecimalList},
	}}
}

func (n *numbering) add(kind ListKind) int {
	id := n.instances[len(n.instances)-1].id + 1
	n.instances = append(n.instances, numInstance{id: id, kind: kind})
	return id
}

func (n *numbering) writeXML(w *xmlWriter) {
	w.header()
	w.raw(`<w:numbering xmlns:w="` + nsW + `">`)

	w.raw(`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="singleLevel"/>`)
	w.raw(`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="` + "•" + `"/>`)
	w.raw(`<w:lvlJc w:val="left"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>`)

	w.raw(`<w:abstractNum w:abstractNumId="1"><w:multiLevelType w:val="singleLevel"/>`)
	w.raw(`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/>`)
	w.raw(`<w:lvlJc w:val="left"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>`)

	for _, inst := range n.instances {
		id := strconv.Itoa(inst.id)
		abstract := "0"
		if inst.kind == DecimalList {
			abstract = "1"
		}
		w.raw(`<w:num w:numId="` + id + `"><w:abstractNumId w:val="` + abstract + `"/>`)
		if inst.kind == DecimalList && inst.id != DecimalNumID {
			w.raw(`<w:lvlOverride w:ilvl="0"><w:startOverride w:val="1"/></w:lvlOverride>`)
		}
		w.raw(`</w:num>`)
	}
	w.raw(`</w:numbering>`)
}
