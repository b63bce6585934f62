package schema

// Resource описывает сериализуемую форму одного типа ресурса JSON:API.
// Регистрируется один раз на старте процесса и после этого не меняется:
// view на запрос строится проекцией (см. ComputeSchema), а не мутацией.
type Resource struct {
	Type    string  `yaml:"type"`     // внешний идентификатор типа ресурса
	Table   string  `yaml:"table"`    // имя таблицы в хранилище
	IDField string  `yaml:"id_field"` // if not "id", identifier field name
	Fields  []Field `yaml:"fields"`   // объявленный порядок полей значим

	// карта имя→позиция, строится один раз при регистрации
	index map[string]int
}

// Field — атрибут или relationship ресурса.
type Field struct {
	Name string    `yaml:"name"`
	Attr string    `yaml:"attr"` // имя поля в хранилище; по умолчанию == Name
	Type string    `yaml:"type"` // скалярный тип ("int", "string", ...); здесь не интерпретируется
	Rel  *Relation `yaml:"rel"`  // nil для обычных атрибутов
}

// Relation описывает relationship-поле.
type Relation struct {
	Type    string `yaml:"type"`     // тип связанного ресурса (ключ в реестре)
	IDField string `yaml:"id_field"` // идентификатор связанного ресурса, по умолчанию "id"
	Many    bool   `yaml:"many"`     // to-many против to-one
	FK      string `yaml:"fk"`       // FK-колонка в хранилище; по умолчанию выводится линкером

	// для runtime (не сериализуется): заранее разрешённый дескриптор,
	// позволяет определять взаимно-ссылающиеся схемы в любом порядке
	ref *Resource
}

// RelationshipInfo — разрешённые метаданные relationship-поля.
type RelationshipInfo struct {
	Type    string // тип связанного ресурса
	IDField string // имя идентификатора связанного ресурса
	Attr    string // имя поля в хранилище (model field)
	Many    bool
}

// ID возвращает имя поля-идентификатора ресурса.
func (r *Resource) ID() string {
	if r.IDField != "" {
		return r.IDField
	}
	return "id"
}

// Field ищет поле по имени. nil, если поля нет.
func (r *Resource) Field(name string) *Field {
	if r.index != nil {
		if i, ok := r.index[name]; ok {
			return &r.Fields[i]
		}
		return nil
	}
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}
	return nil
}

// buildIndex строится при регистрации, чтобы не искать поля линейно на запросе.
func (r *Resource) buildIndex() {
	r.index = make(map[string]int, len(r.Fields))
	for i := range r.Fields {
		r.index[r.Fields[i].Name] = i
	}
}

// ModelField возвращает имя поля в хранилище: Attr, если задан, иначе Name.
// Имена публичного API и атрибуты слоя данных могут расходиться.
func (f *Field) ModelField() string {
	if f.Attr != "" {
		return f.Attr
	}
	return f.Name
}

func (f *Field) IsRelation() bool {
	return f.Rel != nil
}

// RelatedID возвращает имя идентификатора связанного ресурса.
func (rel *Relation) RelatedID() string {
	if rel.IDField != "" {
		return rel.IDField
	}
	return "id"
}

// GetRef возвращает заранее разрешённый дескриптор, если он установлен.
func (rel *Relation) GetRef() *Resource {
	return rel.ref
}

// SetRef подменяет ссылку на связанную схему (вызывается линкером или
// вызывающим кодом, который уже разрешил дескриптор).
func (rel *Relation) SetRef(res *Resource) {
	rel.ref = res
}
