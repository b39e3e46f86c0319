package entity

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// Label метка патча
type Label string

const (
	LabelDefect Label = "defect"
	LabelNormal Label = "normal"
)

// Labels все метки в порядке создания каталогов
var Labels = []Label{LabelDefect, LabelNormal}

// Patch квадратный фрагмент изображения с меткой
type Patch struct {
	X        int             // координата X левого верхнего угла
	Y        int             // координата Y левого верхнего угла
	Size     int             // номинальный размер патча
	Bounds   image.Rectangle // фактическая область (у краёв меньше Size)
	Rotation int             // поворот по часовой стрелке в градусах (0 без аугментации)
	Label    Label
	Path     string // куда записан
}

// Center возвращает координаты центра патча по номинальному размеру
func (p Patch) Center() (x, y int) {
	return p.X + p.Size/2, p.Y + p.Size/2
}

// FileName имя файла патча: {base}-{yyyy}-{xxxx}-{rot}.png
func (p Patch) FileName(base string) string {
	x, y := p.Center()
	return fmt.Sprintf("%s-%04d-%04d-%03d.png", base, y, x, p.Rotation)
}

// PatchBase имя файла до первой точки: "a.b.png" -> "a".
func PatchBase(filename string) string {
	name := filepath.Base(filename)
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

// CropFileName имя файла кропа: отрезается только последнее расширение, всегда .png
func CropFileName(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
}

// MaskPath путь к файлу маски для изображения. Пустой maskDir означает каталог изображения.
func MaskPath(filename, maskDir string) string {
	mask := strings.TrimSuffix(filename, filepath.Ext(filename)) + "-m.png"
	if maskDir == "" {
		return mask
	}
	return filepath.Join(maskDir, filepath.Base(mask))
}
