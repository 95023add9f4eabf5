package models

// SlideKind классифицирует слайд по его медиа-полям
type SlideKind string

const (
	KindVideo        SlideKind = "video"
	KindModalGallery SlideKind = "modalGallery"
	KindModalImage   SlideKind = "modalImage"
	KindCanvas       SlideKind = "canvas"
	KindUnknown      SlideKind = "unknown"
)

// Slide представляет один элемент галереи
//
// Kind никогда не сериализуется: он выводится из полей слайда
// в порядке приоритета video > modalGallery > modalImage > canvas.
type Slide struct {
	Title        string   `json:"title,omitempty" firestore:"title,omitempty"`
	Description  string   `json:"description,omitempty" firestore:"description,omitempty"`
	Src          string   `json:"src,omitempty" firestore:"src,omitempty"`
	Video        string   `json:"video,omitempty" firestore:"video,omitempty"`
	ModalImage   string   `json:"modalImage,omitempty" firestore:"modalImage,omitempty"`
	ModalGallery []string `json:"modalGallery,omitempty" firestore:"modalGallery,omitempty"`
	Canvas       bool     `json:"canvas,omitempty" firestore:"canvas,omitempty"`
}

// Kind возвращает производный тип слайда
func (s Slide) Kind() SlideKind {
	switch {
	case s.Video != "":
		return KindVideo
	case len(s.ModalGallery) > 0:
		return KindModalGallery
	case s.ModalImage != "":
		return KindModalImage
	case s.Canvas:
		return KindCanvas
	default:
		return KindUnknown
	}
}

// Galleries отображение ключ галереи -> упорядоченная последовательность слайдов
type Galleries map[string][]Slide

// Clone возвращает глубокую копию для черновика админ-сессии
func (g Galleries) Clone() Galleries {
	if g == nil {
		return Galleries{}
	}

	out := make(Galleries, len(g))
	for key, slides := range g {
		cp := make([]Slide, len(slides))
		copy(cp, slides)
		for i, s := range slides {
			if s.ModalGallery != nil {
				mg := make([]string, len(s.ModalGallery))
				copy(mg, s.ModalGallery)
				cp[i].ModalGallery = mg
			}
		}
		out[key] = cp
	}

	return out
}
