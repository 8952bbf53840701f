package registry

import (
	"catalog-spec-service/internal/domain"
)

// PresetSpec is one entry of a hardcoded category preset. Presets seed the
// category_spec_templates table the first time a category is configured.
type PresetSpec struct {
	Name        string
	DisplayName string
	DataType    domain.DataType
	IsRequired  bool
	IsFilter    bool
	EnumValues  []string
	Unit        string
	Placeholder string
	HelpText    string
}

// categoryPresets maps a category slug to its starter template list. The
// order of entries defines display_order. Categories without an entry here
// get no templates until an administrator creates them by hand.
var categoryPresets = map[string][]PresetSpec{
	"cpus": {
		{Name: "brand", DisplayName: "Brand", DataType: domain.DataTypeEnum, IsRequired: true, IsFilter: true, EnumValues: []string{"AMD", "Intel"}},
		{Name: "socket", DisplayName: "Socket", DataType: domain.DataTypeText, IsRequired: true, IsFilter: true, Placeholder: "AM5"},
		{Name: "core_count", DisplayName: "Core Count", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true},
		{Name: "thread_count", DisplayName: "Thread Count", DataType: domain.DataTypeNumber, IsFilter: true},
		{Name: "base_clock", DisplayName: "Base Clock", DataType: domain.DataTypeNumber, IsRequired: true, Unit: "GHz"},
		{Name: "boost_clock", DisplayName: "Boost Clock", DataType: domain.DataTypeNumber, Unit: "GHz"},
		{Name: "tdp", DisplayName: "TDP", DataType: domain.DataTypeNumber, IsFilter: true, Unit: "W"},
		{Name: "integrated_graphics", DisplayName: "Integrated Graphics", DataType: domain.DataTypeBoolean, IsFilter: true},
	},
	"graphics-cards": {
		{Name: "brand", DisplayName: "Brand", DataType: domain.DataTypeEnum, IsRequired: true, IsFilter: true, EnumValues: []string{"NVIDIA", "AMD", "Intel"}},
		{Name: "chipset", DisplayName: "Chipset", DataType: domain.DataTypeText, IsRequired: true, IsFilter: true, Placeholder: "GeForce RTX 4070"},
		{Name: "vram", DisplayName: "Video Memory", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true, Unit: "GB"},
		{Name: "memory_type", DisplayName: "Memory Type", DataType: domain.DataTypeEnum, IsFilter: true, EnumValues: []string{"GDDR6", "GDDR6X", "GDDR7", "HBM2"}},
		{Name: "length", DisplayName: "Card Length", DataType: domain.DataTypeNumber, Unit: "mm", HelpText: "Checked against case GPU clearance"},
		{Name: "tdp", DisplayName: "TDP", DataType: domain.DataTypeNumber, IsFilter: true, Unit: "W"},
		{Name: "power_connectors", DisplayName: "Power Connectors", DataType: domain.DataTypeText, Placeholder: "1x 16-pin"},
	},
	"motherboards": {
		{Name: "socket", DisplayName: "Socket", DataType: domain.DataTypeText, IsRequired: true, IsFilter: true, Placeholder: "LGA1700"},
		{Name: "chipset", DisplayName: "Chipset", DataType: domain.DataTypeText, IsRequired: true, IsFilter: true},
		{Name: "form_factor", DisplayName: "Form Factor", DataType: domain.DataTypeEnum, IsRequired: true, IsFilter: true, EnumValues: []string{"ATX", "Micro-ATX", "Mini-ITX", "E-ATX"}},
		{Name: "memory_type", DisplayName: "Memory Type", DataType: domain.DataTypeEnum, IsRequired: true, IsFilter: true, EnumValues: []string{"DDR4", "DDR5"}},
		{Name: "memory_slots", DisplayName: "Memory Slots", DataType: domain.DataTypeNumber, IsFilter: true},
		{Name: "max_memory", DisplayName: "Max Memory", DataType: domain.DataTypeNumber, Unit: "GB"},
		{Name: "wifi", DisplayName: "Built-in Wi-Fi", DataType: domain.DataTypeBoolean, IsFilter: true},
	},
	"memory": {
		{Name: "memory_type", DisplayName: "Memory Type", DataType: domain.DataTypeEnum, IsRequired: true, IsFilter: true, EnumValues: []string{"DDR4", "DDR5"}},
		{Name: "capacity", DisplayName: "Capacity", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true, Unit: "GB"},
		{Name: "speed", DisplayName: "Speed", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true, Unit: "MT/s"},
		{Name: "modules", DisplayName: "Module Count", DataType: domain.DataTypeNumber, IsFilter: true},
		{Name: "cas_latency", DisplayName: "CAS Latency", DataType: domain.DataTypeNumber},
		{Name: "rgb", DisplayName: "RGB Lighting", DataType: domain.DataTypeBoolean, IsFilter: true},
	},
	"storage": {
		{Name: "storage_type", DisplayName: "Type", DataType: domain.DataTypeEnum, IsRequired: true, IsFilter: true, EnumValues: []string{"NVMe SSD", "SATA SSD", "HDD"}},
		{Name: "capacity", DisplayName: "Capacity", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true, Unit: "GB"},
		{Name: "interface", DisplayName: "Interface", DataType: domain.DataTypeText, IsFilter: true, Placeholder: "PCIe 4.0 x4"},
		{Name: "read_speed", DisplayName: "Sequential Read", DataType: domain.DataTypeNumber, Unit: "MB/s"},
		{Name: "write_speed", DisplayName: "Sequential Write", DataType: domain.DataTypeNumber, Unit: "MB/s"},
	},
	"power-supplies": {
		{Name: "wattage", DisplayName: "Wattage", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true, Unit: "W"},
		{Name: "efficiency", DisplayName: "Efficiency Rating", DataType: domain.DataTypeEnum, IsRequired: true, IsFilter: true, EnumValues: []string{"80+ Bronze", "80+ Silver", "80+ Gold", "80+ Platinum", "80+ Titanium"}},
		{Name: "modular", DisplayName: "Modularity", DataType: domain.DataTypeEnum, IsFilter: true, EnumValues: []string{"Full", "Semi", "Non-modular"}},
		{Name: "form_factor", DisplayName: "Form Factor", DataType: domain.DataTypeEnum, IsFilter: true, EnumValues: []string{"ATX", "SFX", "SFX-L"}},
	},
	"cases": {
		{Name: "form_factor", DisplayName: "Form Factor", DataType: domain.DataTypeEnum, IsRequired: true, IsFilter: true, EnumValues: []string{"Full Tower", "Mid Tower", "Mini Tower", "SFF"}},
		{Name: "motherboard_support", DisplayName: "Motherboard Support", DataType: domain.DataTypeText, IsRequired: true, Placeholder: "ATX, Micro-ATX, Mini-ITX"},
		{Name: "gpu_clearance", DisplayName: "GPU Clearance", DataType: domain.DataTypeNumber, Unit: "mm"},
		{Name: "cooler_clearance", DisplayName: "CPU Cooler Clearance", DataType: domain.DataTypeNumber, Unit: "mm"},
		{Name: "side_panel", DisplayName: "Tempered Glass Panel", DataType: domain.DataTypeBoolean, IsFilter: true},
	},
	"cpu-coolers": {
		{Name: "cooler_type", DisplayName: "Type", DataType: domain.DataTypeEnum, IsRequired: true, IsFilter: true, EnumValues: []string{"Air", "Liquid"}},
		{Name: "socket_support", DisplayName: "Socket Support", DataType: domain.DataTypeText, IsRequired: true, Placeholder: "AM5, LGA1700"},
		{Name: "radiator_size", DisplayName: "Radiator Size", DataType: domain.DataTypeNumber, IsFilter: true, Unit: "mm"},
		{Name: "height", DisplayName: "Height", DataType: domain.DataTypeNumber, Unit: "mm", HelpText: "Checked against case cooler clearance"},
		{Name: "noise_level", DisplayName: "Max Noise Level", DataType: domain.DataTypeNumber, Unit: "dBA"},
	},
	"monitors": {
		{Name: "screen_size", DisplayName: "Screen Size", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true, Unit: "in"},
		{Name: "resolution", DisplayName: "Resolution", DataType: domain.DataTypeEnum, IsRequired: true, IsFilter: true, EnumValues: []string{"1920x1080", "2560x1440", "3440x1440", "3840x2160"}},
		{Name: "refresh_rate", DisplayName: "Refresh Rate", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true, Unit: "Hz"},
		{Name: "panel_type", DisplayName: "Panel Type", DataType: domain.DataTypeEnum, IsFilter: true, EnumValues: []string{"IPS", "VA", "TN", "OLED"}},
		{Name: "curved", DisplayName: "Curved", DataType: domain.DataTypeBoolean, IsFilter: true},
	},
	"laptops": {
		{Name: "brand", DisplayName: "Brand", DataType: domain.DataTypeText, IsRequired: true, IsFilter: true},
		{Name: "cpu", DisplayName: "Processor", DataType: domain.DataTypeText, IsRequired: true},
		{Name: "ram", DisplayName: "Memory", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true, Unit: "GB"},
		{Name: "storage", DisplayName: "Storage", DataType: domain.DataTypeNumber, IsRequired: true, IsFilter: true, Unit: "GB"},
		{Name: "screen_size", DisplayName: "Screen Size", DataType: domain.DataTypeNumber, IsFilter: true, Unit: "in"},
	},
}

// PresetForSlug returns the preset template list for a category slug.
func PresetForSlug(slug string) ([]PresetSpec, bool) {
	preset, ok := categoryPresets[slug]
	return preset, ok
}

// templatesFromPreset converts preset entries into SpecTemplate drafts for
// the given category, assigning display_order from position.
func templatesFromPreset(categoryID int64, preset []PresetSpec) []domain.SpecTemplate {
	tpls := make([]domain.SpecTemplate, 0, len(preset))
	for i, p := range preset {
		tpl := domain.SpecTemplate{
			CategoryID:   categoryID,
			Name:         p.Name,
			DisplayName:  p.DisplayName,
			DataType:     p.DataType,
			IsRequired:   p.IsRequired,
			IsFilter:     p.IsFilter,
			DisplayOrder: int32(i),
			EnumValues:   append([]string(nil), p.EnumValues...),
		}
		// Copy optional strings so templates never point into the preset table.
		if p.Unit != "" {
			unit := p.Unit
			tpl.Unit = &unit
		}
		if p.Placeholder != "" {
			placeholder := p.Placeholder
			tpl.Placeholder = &placeholder
		}
		if p.HelpText != "" {
			helpText := p.HelpText
			tpl.HelpText = &helpText
		}
		tpls = append(tpls, tpl)
	}
	return tpls
}
