package sample

// Base carries the fields every component shares.
type Base struct {
	Anchor string `authorkit:"DialogField(label=Anchor,ranking=100);TextField"`
}

// Teaser is a teaser with a title, links and an address.
//
//authorkit:Component(title=Teaser,group=Sample)
//authorkit:Dialog(title='Teaser, edit')
//authorkit:HTMLTag(class=teaser)
type Teaser struct {
	Base

	Title    string   `authorkit:"DialogField(label=Title,required=true,ranking=1);TextField(maxLength=80)"`
	Subtitle string   `authorkit:"DialogField(label=Subtitle,ranking=2);TextField"`
	Links    []string `authorkit:"DialogField(label=Links,ranking=3);TextField;Multiple(typeHint=String)"`
	Address  Address  `authorkit:"DialogField(label=Address,ranking=4);FieldSet(title=Address,namePrefix=addr_)"`
	Notes    string
}

// Address is rendered through a fieldset.
type Address struct {
	Street string `authorkit:"DialogField(label=Street);TextField"`
	City   string `authorkit:"DialogField(label=City);TextField"`
}

// Card lays its fields out in tabs.
//
//authorkit:Dialog(title=Card)
//authorkit:Tabs(value=Main|Extra)
type Card struct {
	Heading string `authorkit:"DialogField(label=Heading);TextField"`
	Note    string `authorkit:"DialogField(label=Note);TextArea(rows=3);Place(Extra)"`
	Size    string `authorkit:"DialogField(label=Size);Select(emptyText=Pick)"`
}

// GetLabel is shown next to the heading.
//
//authorkit:DialogField(label=Label,ranking=-1)
//authorkit:TextField
func (c Card) GetLabel() string { return c.Heading }

// Broken declares descriptors the analyzer reports.
//
//authorkit:Dialog
type Broken struct {
	Bad   string `authorkit:"Bogus;DialogField(lable=x)"`
	Count int    `authorkit:"DialogField(ranking=abc);NumberField(step=2)"`
}
