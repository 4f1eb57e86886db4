package lexicon

// defaultExpansions maps informal and contracted spellings to their full forms.
// Keys are lowercase. Words missing here still go through DefaultRules.
var defaultExpansions = map[string][]string{
	"boutta":     {"about to"},
	"aboutta":    {"about to"},
	"ain't":      {"am not", "is not", "are not", "has not", "have not"},
	"can't":      {"cannot"},
	"he'd":       {"he would", "he had"},
	"he's":       {"he is", "he has"},
	"i'd":        {"i would", "i had"},
	"it's":       {"it is", "it has"},
	"let's":      {"let us"},
	"shan't":     {"shall not"},
	"she'd":      {"she would", "she had"},
	"she's":      {"she is", "she has"},
	"that's":     {"that is", "that has"},
	"there's":    {"there is", "there has"},
	"they'd":     {"they would", "they had"},
	"we'd":       {"we would", "we had"},
	"what's":     {"what is", "what has"},
	"where's":    {"where is", "where has"},
	"who'd":      {"who would", "who had"},
	"who's":      {"who is", "who has"},
	"won't":      {"will not"},
	"you'd":      {"you would", "you had"},
	"gimme":      {"give me"},
	"gonna":      {"going to"},
	"wanna":      {"want to"},
	"gotta":      {"got to"},
	"hafta":      {"have to"},
	"dunno":      {"don't know"},
	"lemme":      {"let me"},
	"kinda":      {"kind of"},
	"sorta":      {"sort of"},
	"outta":      {"out of"},
	"c'mon":      {"come on"},
	"shoulda":    {"should have"},
	"coulda":     {"could have"},
	"woulda":     {"would have"},
	"musta":      {"must have"},
	"mighta":     {"might have"},
	"shouldna":   {"should not have"},
	"couldna":    {"could not have"},
	"wouldna":    {"would not have"},
	"whatcha":    {"what are you", "what have you"},
	"betcha":     {"bet you"},
	"gotcha":     {"got you"},
	"dontcha":    {"don't you"},
	"didntcha":   {"didn't you"},
	"wontcha":    {"won't you"},
	"need'a":     {"need to"},
	"oughta":     {"ought to"},
	"supposta":   {"supposed to"},
	"useta":      {"used to"},
	"lotta":      {"lot of"},
	"cuppa":      {"cup of"},
	"s'more":     {"some more"},
	"tellem":     {"tell them"},
	"i'mma":      {"i'm going to"},
	"y'all":      {"you all"},
	"y'all'd've": {"you all would have"},
	"amn't":      {"am not"},
	"'tis":       {"it is"},
	"'twas":      {"it was"},
	"o'er":       {"over"},
	"ne'er":      {"never"},
	"e'er":       {"ever"},
	"e'en":       {"even"},
}
