package entity

// SplitResult хранит итог нарезки изображения.
type SplitResult struct {
	ImageWidth  int     // ширина изображения
	ImageHeight int     // высота изображения
	Patches     []Patch // записанные патчи
	Defects     int     // число патчей с дефектом
	Normals     int     // число нормальных патчей
	HasDefects  bool    // флаг наличия дефектов
}

// Add учитывает записанный патч
func (r *SplitResult) Add(p Patch) {
	r.Patches = append(r.Patches, p)
	if p.Label == LabelDefect {
		r.Defects++
		r.HasDefects = true
	} else {
		r.Normals++
	}
}

// CropResult результат перспективного кропа.
type CropResult struct {
	Path   string
	Width  int
	Height int
}
