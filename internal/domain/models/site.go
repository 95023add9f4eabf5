package models

type SectionStatus string

const (
	StatusShow SectionStatus = "show"
	StatusSoon SectionStatus = "soon"
	StatusHide SectionStatus = "hide"
)

// Contact контакт в конфигурации сайта
type Contact struct {
	Label string `json:"label" firestore:"label"`
	Value string `json:"value" firestore:"value"`
}

// Section раздел навигации сайта
//
// Visible — устаревший флаг из старых документов: учитывается
// только когда явный Status отсутствует.
type Section struct {
	Key     string        `json:"key" firestore:"key"`
	Label   string        `json:"label,omitempty" firestore:"label,omitempty"`
	Status  SectionStatus `json:"status,omitempty" firestore:"status,omitempty" validate:"omitempty,oneof=show soon hide"`
	Visible *bool         `json:"visible,omitempty" firestore:"visible,omitempty"`
}

// EffectiveStatus возвращает статус раздела с учетом устаревшего флага visible
func (s Section) EffectiveStatus() SectionStatus {
	if s.Status != "" {
		return s.Status
	}
	if s.Visible != nil && !*s.Visible {
		return StatusHide
	}
	return StatusShow
}

// SiteConfig конфигурация сайта целиком
type SiteConfig struct {
	Bio       string    `json:"bio,omitempty" firestore:"bio,omitempty"`
	APIBase   string    `json:"apiBase,omitempty" firestore:"apiBase,omitempty"`
	ShaderURL string    `json:"shaderUrl,omitempty" firestore:"shaderUrl,omitempty"`
	Contacts  []Contact `json:"contacts,omitempty" firestore:"contacts,omitempty"`
	Sections  []Section `json:"sections,omitempty" firestore:"sections,omitempty" validate:"omitempty,dive"`
}

// Normalize приводит конфигурацию к каноничному виду:
// статусы разделов материализуются, контакты без label или value
// отбрасываются, дубликаты ключей разделов схлопываются (первый выигрывает).
// Порядок контактов и разделов сохраняется. Срезы строятся заново:
// конфигурация, разделяющая массивы с черновиком, не трогает его.
func (c *SiteConfig) Normalize() {
	contacts := make([]Contact, 0, len(c.Contacts))
	for _, ct := range c.Contacts {
		if ct.Label == "" || ct.Value == "" {
			continue
		}
		contacts = append(contacts, ct)
	}
	c.Contacts = contacts

	seen := make(map[string]struct{}, len(c.Sections))
	sections := make([]Section, 0, len(c.Sections))
	for _, sec := range c.Sections {
		if sec.Key == "" {
			continue
		}
		if _, dup := seen[sec.Key]; dup {
			continue
		}
		seen[sec.Key] = struct{}{}

		sec.Status = sec.EffectiveStatus()
		sec.Visible = nil
		sections = append(sections, sec)
	}
	c.Sections = sections
}

// Clone возвращает глубокую копию для черновика админ-сессии
func (c SiteConfig) Clone() SiteConfig {
	out := c

	if c.Contacts != nil {
		out.Contacts = make([]Contact, len(c.Contacts))
		copy(out.Contacts, c.Contacts)
	}
	if c.Sections != nil {
		out.Sections = make([]Section, len(c.Sections))
		copy(out.Sections, c.Sections)
		for i, sec := range c.Sections {
			if sec.Visible != nil {
				v := *sec.Visible
				out.Sections[i].Visible = &v
			}
		}
	}

	return out
}
