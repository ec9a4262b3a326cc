package colorname

// named is matched in order; on a tie the earlier entry wins.
var named = []entry{
	{"Black", rgb{0, 0, 0}},
	{"White", rgb{255, 255, 255}},
	{"Red", rgb{255, 0, 0}},
	{"Lime", rgb{0, 255, 0}},
	{"Blue", rgb{0, 0, 255}},
	{"Yellow", rgb{255, 255, 0}},
	{"Cyan", rgb{0, 255, 255}},
	{"Magenta", rgb{255, 0, 255}},
	{"Silver", rgb{192, 192, 192}},
	{"Gray", rgb{128, 128, 128}},
	{"Maroon", rgb{128, 0, 0}},
	{"Olive", rgb{128, 128, 0}},
	{"Green", rgb{0, 128, 0}},
	{"Purple", rgb{128, 0, 128}},
	{"Teal", rgb{0, 128, 128}},
	{"Navy", rgb{0, 0, 128}},
	{"Orange", rgb{255, 165, 0}},
	{"Pink", rgb{255, 192, 203}},
	{"Brown", rgb{165, 42, 42}},
	{"Coral", rgb{255, 127, 80}},
	{"Gold", rgb{255, 215, 0}},
	{"Khaki", rgb{240, 230, 140}},
	{"Lavender", rgb{230, 230, 250}},
	{"Beige", rgb{245, 245, 220}},
	{"Ivory", rgb{255, 255, 240}},
	{"Tan", rgb{210, 180, 140}},
	{"Chocolate", rgb{210, 105, 30}},
	{"SaddleBrown", rgb{139, 69, 19}},
	{"Sienna", rgb{160, 82, 45}},
	{"Peru", rgb{205, 133, 63}},
	{"SandyBrown", rgb{244, 164, 96}},
	{"Wheat", rgb{245, 222, 179}},
	{"BurlyWood", rgb{222, 184, 135}},
	{"RosyBrown", rgb{188, 143, 143}},
	{"IndianRed", rgb{205, 92, 92}},
	{"Crimson", rgb{220, 20, 60}},
	{"Tomato", rgb{255, 99, 71}},
	{"OrangeRed", rgb{255, 69, 0}},
	{"DarkOrange", rgb{255, 140, 0}},
	{"Salmon", rgb{250, 128, 114}},
	{"LightCoral", rgb{240, 128, 128}},
	{"HotPink", rgb{255, 105, 180}},
	{"DeepPink", rgb{255, 20, 147}},
	{"MediumVioletRed", rgb{199, 21, 133}},
	{"Plum", rgb{221, 160, 221}},
	{"Orchid", rgb{218, 112, 214}},
	{"Violet", rgb{238, 130, 238}},
	{"Indigo", rgb{75, 0, 130}},
	{"SlateBlue", rgb{106, 90, 205}},
	{"MediumSlateBlue", rgb{123, 104, 238}},
	{"RoyalBlue", rgb{65, 105, 225}},
	{"DodgerBlue", rgb{30, 144, 255}},
	{"SteelBlue", rgb{70, 130, 180}},
	{"CornflowerBlue", rgb{100, 149, 237}},
	{"SkyBlue", rgb{135, 206, 235}},
	{"LightBlue", rgb{173, 216, 230}},
	{"Turquoise", rgb{64, 224, 208}},
	{"Aquamarine", rgb{127, 255, 212}},
	{"MediumAquamarine", rgb{102, 205, 170}},
	{"DarkCyan", rgb{0, 139, 139}},
	{"SeaGreen", rgb{46, 139, 87}},
	{"MediumSeaGreen", rgb{60, 179, 113}},
	{"LightGreen", rgb{144, 238, 144}},
	{"PaleGreen", rgb{152, 251, 152}},
	{"SpringGreen", rgb{0, 255, 127}},
	{"LawnGreen", rgb{124, 252, 0}},
	{"Chartreuse", rgb{127, 255, 0}},
	{"GreenYellow", rgb{173, 255, 47}},
	{"YellowGreen", rgb{154, 205, 50}},
	{"OliveDrab", rgb{107, 142, 35}},
	{"DarkKhaki", rgb{189, 183, 107}},
	{"PaleGoldenrod", rgb{238, 232, 170}},
	{"LemonChiffon", rgb{255, 250, 205}},
	{"LightGoldenrodYellow", rgb{250, 250, 210}},
	{"Moccasin", rgb{255, 228, 181}},
	{"PapayaWhip", rgb{255, 239, 213}},
	{"PeachPuff", rgb{255, 218, 185}},
	{"NavajoWhite", rgb{255, 222, 173}},
	{"Bisque", rgb{255, 228, 196}},
	{"BlanchedAlmond", rgb{255, 235, 205}},
	{"AntiqueWhite", rgb{250, 235, 215}},
	{"Linen", rgb{250, 240, 230}},
	{"OldLace", rgb{253, 245, 230}},
	{"Seashell", rgb{255, 245, 238}},
	{"MistyRose", rgb{255, 228, 225}},
	{"Snow", rgb{255, 250, 250}},
	{"FloralWhite", rgb{255, 250, 240}},
	{"MintCream", rgb{245, 255, 250}},
	{"Azure", rgb{240, 255, 255}},
	{"AliceBlue", rgb{240, 248, 255}},
	{"GhostWhite", rgb{248, 248, 255}},
	{"WhiteSmoke", rgb{245, 245, 245}},
	{"Gainsboro", rgb{220, 220, 220}},
	{"LightGray", rgb{211, 211, 211}},
	{"DarkGray", rgb{169, 169, 169}},
	{"DimGray", rgb{105, 105, 105}},
	{"SlateGray", rgb{112, 128, 144}},
	{"DarkSlateGray", rgb{47, 79, 79}},
}
