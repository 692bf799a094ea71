package valueobjects

import "errors"

// PlaceholderPhoto é a referência usada quando um anúncio fica sem fotos
const PlaceholderPhoto = "/placeholder.svg"

// MaxPhotos é o número máximo de fotos por anúncio
const MaxPhotos = 10

var (
	ErrTooManyPhotos = errors.New("photo set cannot exceed 10 entries")
)

// PhotoSet é a coleção ordenada de referências de fotos de um anúncio.
// Invariante: nunca vazia — quando a última foto real é removida, o
// placeholder é inserido no lugar.
type PhotoSet struct {
	refs []string
}

// NewPhotoSet cria um PhotoSet validado a partir de uma lista de referências.
// Uma lista vazia resulta no placeholder.
func NewPhotoSet(refs []string) (PhotoSet, error) {
	if len(refs) > MaxPhotos {
		return PhotoSet{}, ErrTooManyPhotos
	}

	if len(refs) == 0 {
		return PhotoSet{refs: []string{PlaceholderPhoto}}, nil
	}

	copied := make([]string, len(refs))
	copy(copied, refs)
	return PhotoSet{refs: copied}, nil
}

// Refs retorna uma cópia das referências, na ordem de inserção
func (p PhotoSet) Refs() []string {
	refs := make([]string, len(p.refs))
	copy(refs, p.refs)
	return refs
}

// Len retorna o número de referências (sempre >= 1 após construção)
func (p PhotoSet) Len() int {
	return len(p.refs)
}

// Contains verifica se a referência existe no conjunto
func (p PhotoSet) Contains(ref string) bool {
	for _, r := range p.refs {
		if r == ref {
			return true
		}
	}
	return false
}

// Remove retira uma referência do conjunto. Se o conjunto ficar vazio,
// o placeholder é inserido para manter a invariante de não-vazio.
func (p PhotoSet) Remove(ref string) PhotoSet {
	refs := make([]string, 0, len(p.refs))
	for _, r := range p.refs {
		if r != ref {
			refs = append(refs, r)
		}
	}

	if len(refs) == 0 {
		refs = append(refs, PlaceholderPhoto)
	}

	return PhotoSet{refs: refs}
}

// IsPlaceholderOnly verifica se o conjunto contém apenas o placeholder
func (p PhotoSet) IsPlaceholderOnly() bool {
	return len(p.refs) == 1 && p.refs[0] == PlaceholderPhoto
}
