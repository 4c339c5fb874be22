package layouts

import "fmt"

// Handle is a keyboard layout handle (HKL) as handed out by the OS.
type Handle uintptr

const (
	tagMask    = 0xF0000000
	imeTag     = 0xE0000000
	variantTag = 0xF0000000
)

func (h Handle) Low() uint16 {
	return uint16(uint32(h) & 0xFFFF)
}

func (h Handle) High() uint16 {
	return uint16(uint32(h) >> 16)
}

// LangID is the language the layout belongs to.
func (h Handle) LangID() uint16 {
	return h.Low()
}

func (h Handle) IsIME() bool {
	return uint32(h)&tagMask == imeTag
}

func (h Handle) IsVariant() bool {
	return uint32(h)&tagMask == variantTag
}

func (h Handle) Variant() uint32 {
	return uint32(h.High()) & 0x0FFF
}

func (h Handle) String() string {
	return fmt.Sprintf("%08X", uint32(h))
}

// MakeHandle packs a language id and a layout word into a plain handle.
func MakeHandle(lang, layout uint16) Handle {
	return Handle(uint32(layout)<<16 | uint32(lang))
}

// MakeVariantHandle builds a variant-tagged handle for lang.
func MakeVariantHandle(lang uint16, variant uint32) Handle {
	return Handle(variantTag | (variant&0x0FFF)<<16 | uint32(lang))
}
