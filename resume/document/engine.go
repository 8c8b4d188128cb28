package document

// DefaultHeaderLink is stored in header.link when the client omits it.
const DefaultHeaderLink = "linkedin"

// Normalizer turns raw client payloads into canonical resume documents.
// The zero value is ready to use. OnCoerce, when set, is called once per
// malformed fragment that was replaced by a default.
type Normalizer struct {
	OnCoerce func(Coercion)
}

// Create builds the document stored for a new resume. Client layout and
// visibility are ignored; design values the client sent are kept.
func (n Normalizer) Create(raw Document) Document {
	report := reportFunc(n.OnCoerce)
	doc := cloneDocument(raw)
	ensureHeaderLink(doc, report)

	doc[KeyLayout] = DefaultLayout()
	doc[KeyHiddenSections] = []any{}
	doc[KeyVisibleSections] = allVisible()
	doc[KeyDesign] = normalizeDesign(doc[KeyDesign], report)
	if exp, ok := doc[KeyExperience]; ok {
		doc[KeyExperience] = NormalizeExperience(exp)
	}
	return doc
}

// Update re-derives the document from incoming, the full replacement the
// client wants stored. When incoming is nil the existing document is
// re-derived instead. Keys not owned by a normalizer pass through.
func (n Normalizer) Update(incoming, existing Document) Document {
	report := reportFunc(n.OnCoerce)
	src := incoming
	if src == nil {
		src = existing
	}
	doc := cloneDocument(src)
	ensureHeaderLink(doc, report)

	doc[KeyLayout] = normalizeLayout(doc[KeyLayout], ModeUpdate, report)
	hidden, visible := normalizeVisibility(doc[KeyHiddenSections], doc[KeyVisibleSections], report)
	doc[KeyHiddenSections] = hidden
	doc[KeyVisibleSections] = visible
	doc[KeyDesign] = normalizeDesign(doc[KeyDesign], report)
	if exp, ok := doc[KeyExperience]; ok {
		doc[KeyExperience] = NormalizeExperience(exp)
	}
	return doc
}

// Create normalizes raw with a zero Normalizer.
func Create(raw Document) Document {
	return Normalizer{}.Create(raw)
}

// Update normalizes incoming with a zero Normalizer.
func Update(incoming, existing Document) Document {
	return Normalizer{}.Update(incoming, existing)
}

// doc must already be a private copy.
func ensureHeaderLink(doc Document, report reportFunc) {
	raw, present := doc[KeyHeader]
	header, ok := asMap(raw)
	if !ok {
		if present && raw != nil {
			report.emit(MalformedHeader)
		}
		header = map[string]any{}
	}
	if _, has := header["link"]; !has {
		header["link"] = DefaultHeaderLink
	}
	doc[KeyHeader] = header
}
