package snapshot

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/plc-tools/tia-export/internal/pkg/model"
)

// EngineeringVersion is written to the generated documents.
const EngineeringVersion = "V17"

type document struct {
	XMLName     xml.Name    `xml:"Document"`
	Engineering engineering `xml:"Engineering"`
	Object      object
}

type engineering struct {
	Version string `xml:"version,attr"`
}

type object struct {
	XMLName    xml.Name
	ID         string      `xml:"ID,attr"`
	Attributes attributes  `xml:"AttributeList"`
	Objects    *objectList `xml:"ObjectList,omitempty"`
}

type objectList struct {
	Items []object
}

type attributes struct {
	Items []attribute
}

type attribute struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// writeDocument writes the generated XML document of the entity.
func writeDocument(w io.Writer, e *Entity) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(newDocument(e)); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}

func newDocument(e *Entity) document {
	ids := &idGenerator{}
	root := object{ID: ids.next()}
	root.Attributes.add("Name", e.EntityName)

	switch e.EntityKind {
	case model.BlockKind:
		root.XMLName.Local = "SW.Blocks.Block"
		root.Attributes.add("ProgrammingLanguage", e.Language)
	case model.TypeKind:
		root.XMLName.Local = "SW.Types.PlcStruct"
	case model.TagTableKind:
		if e.Scope() == model.VisualizationScope {
			root.XMLName.Local = "Hmi.Tag.TagTable"
			root.Objects = tagObjects(ids, "Hmi.Tag.Tag", "Address", e.Tags)
		} else {
			root.XMLName.Local = "SW.Tags.PlcTagTable"
			root.Objects = tagObjects(ids, "SW.Tags.PlcTag", "LogicalAddress", e.Tags)
		}
	case model.TextListKind:
		root.XMLName.Local = "Hmi.TextGraphicList.TextList"
		root.Objects = textObjects(ids, e.Texts)
	default:
		root.XMLName.Local = "Object"
	}

	return document{Engineering: engineering{Version: EngineeringVersion}, Object: root}
}

func tagObjects(ids *idGenerator, element, addressAttr string, tags []Tag) *objectList {
	if len(tags) == 0 {
		return nil
	}
	list := &objectList{}
	for _, tag := range tags {
		item := object{XMLName: xmlName(element), ID: ids.next()}
		item.Attributes.add("Name", tag.Name)
		item.Attributes.add("DataTypeName", tag.DataType)
		item.Attributes.add(addressAttr, tag.Address)
		item.Attributes.add("Comment", tag.Comment)
		list.Items = append(list.Items, item)
	}
	return list
}

func textObjects(ids *idGenerator, texts []Text) *objectList {
	if len(texts) == 0 {
		return nil
	}
	list := &objectList{}
	for _, text := range texts {
		item := object{XMLName: xmlName("Hmi.TextGraphicList.TextListEntry"), ID: ids.next()}
		item.Attributes.add("Value", text.Value)
		item.Attributes.add("Text", text.Text)
		list.Items = append(list.Items, item)
	}
	return list
}

// add appends a non-empty attribute.
func (a *attributes) add(name, value string) {
	if value == "" {
		return
	}
	a.Items = append(a.Items, attribute{XMLName: xmlName(name), Value: value})
}

type idGenerator struct {
	last int
}

func (g *idGenerator) next() string {
	id := strconv.Itoa(g.last)
	g.last++
	return id
}

func xmlName(local string) xml.Name {
	return xml.Name{Local: local}
}
