package widget

import (
	"authoring-kit/internal/handler"
	"authoring-kit/internal/kinds"
)

// Handler names, used in before/after relations.
const (
	NameComponent       = "component"
	NameDialog          = "dialog"
	NameEditConfig      = "edit-config"
	NameChildEditConfig = "child-edit-config"
	NameHTMLTag         = "html-tag"
	NameDialogField     = "dialog-field"
	NameWidget          = "widget"
	NameFieldSet        = "fieldset"
	NameTabs            = "tabs"
	NameAccordion       = "accordion"
	NameColumns         = "columns"
	NameMultiple        = "multiple"
	NameMultipleField   = "multiple-field"
)

// Registrations returns the built-in handlers in discovery order.
func Registrations() []handler.Registration {
	widgetKinds := append([]string{"DialogField", "ResourceType"}, kinds.Widgets()...)
	containers := []string{NameFieldSet, NameTabs, NameAccordion, NameColumns}

	return []handler.Registration{
		{Name: NameComponent, Kinds: []string{"Component"}, Handler: handler.Func(handleComponent)},
		{Name: NameDialog, Kinds: []string{"Dialog", "DesignDialog"}, Handler: handler.Func(handleDialog)},
		{Name: NameEditConfig, Kinds: []string{"EditConfig"}, Handler: handler.Func(handleEditConfig)},
		{Name: NameChildEditConfig, Kinds: []string{"ChildEditConfig"}, Handler: handler.Func(handleEditConfig)},
		{Name: NameHTMLTag, Kinds: []string{"HTMLTag"}, Handler: handler.Func(handleHTMLTag)},
		{Name: NameDialogField, Kinds: []string{"DialogField"}, Handler: handler.Func(handleDialogField)},
		{Name: NameWidget, Kinds: widgetKinds, Before: []string{NameDialogField}, Handler: handler.Func(handleWidget)},
		{Name: NameFieldSet, Kinds: []string{"FieldSet"}, After: []string{NameWidget}, Handler: handler.Func(handleFieldSet)},
		{Name: NameTabs, Kinds: []string{"Tabs"}, After: []string{NameWidget}, Handler: sectionHandler("Tabs")},
		{Name: NameAccordion, Kinds: []string{"Accordion"}, After: []string{NameWidget}, Handler: sectionHandler("Accordion")},
		{Name: NameColumns, Kinds: []string{"FixedColumns"}, After: []string{NameWidget}, Handler: sectionHandler("FixedColumns")},
		{
			Name:    NameMultiple,
			Kinds:   []string{"Multiple"},
			After:   append([]string{NameDialogField, NameWidget}, containers...),
			Handler: handler.Func(handleMultiple),
		},
		{Name: NameMultipleField, Kinds: []string{"Multiple"}, Repeatable: true, Handler: handler.Func(handleMultipleField)},
	}
}

// NewRegistry builds the registry of the built-in handlers.
func NewRegistry() *handler.Registry {
	return handler.NewRegistry(Registrations(), kinds.ScopesOf)
}
