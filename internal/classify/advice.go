package classify

// Spoken advice texts for the rule engine. These mirror what the remote
// persona would say so callers get consistent guidance in degraded mode.
// They deliberately stay medicine-safe: hydration, rest, steam, ORS, and
// clear "see a doctor when" thresholds only.
const (
	vaccinationAdvice = "Vaccination schedule (0-2 years): Birth - BCG, OPV-0, Hepatitis B; " +
		"6 weeks - DTaP, IPV, Hib, PCV; 10 weeks - second doses; 14 weeks - third doses; " +
		"9 months - Measles; 12 months - Hepatitis A; 15 months - MMR aur PCV booster; " +
		"18 months - DTaP booster. Poori jaankari ke liye apne najdeeki health center jaayein."

	pregnancyNutritionAdvice = "Garbhavastha mein nutritious khana bahut zaroori hai. " +
		"Protein ke liye daal, eggs aur doodh lein. Hara saag jaise palak aur methi, phal, " +
		"aur sabziyan khayein. Iron ke liye palak aur chana lein. Folic acid ke liye hare " +
		"patte wali sabzi. Din mein 3-4 baar thoda-thoda khaana behtar hai. Paani aur juice " +
		"bharpur matra mein piyein, 8-10 glass roz."

	feverAdultAdvice = "Main aapki madad kar rahi hoon. Aapko fever hai - complete bed rest " +
		"karein, garm paani, ginger tea aur tulsi water din mein 10-12 glass piyein, " +
		"subah-shaam bhap lein, aur halka nutritious khana khayein. Agar fever 3 din mein " +
		"kam na ho ya 103 degree se zyada ho to doctor se zaroor milein."

	feverChildAdvice = "Bacche ko aaram karwayein aur garm kapde pehnaayein. Bharpur matra " +
		"mein paani, juice ya ORS solution pilayein. Room temperature paani se sponging kar " +
		"sakte hain. Bukhar 2 din se zyada rahe, baccha sust ho jaaye, ya bukhar bahut tez " +
		"ho to doctor se zaroor milein."

	coughAdultAdvice = "Main aapko khansi ka upay bata rahi hoon: garm paani mein namak " +
		"daal kar din mein 3-4 baar garara karein, ginger tea, tulsi water aur shahad wala " +
		"doodh piyein, din mein 2-3 baar bhap lein, aur dhuaan aur thandi cheezon se bachein. " +
		"Agar khansi 2 hafte se zyada rahe ya saans lene mein takleef ho to turant doctor se milein."

	coughChildAdvice = "Bacche ko garm paani pilayein aur bhap dilayein. Ek saal se bade " +
		"bacchon ko shahad de sakte hain, rahat milti hai. Khansi ek hafte se zyada rahe ya " +
		"saans lene mein takleef ho to doctor se milein."

	feverCoughAdultAdvice = "Main aapko fever aur khansi dono ke liye pura upay bata rahi " +
		"hoon: complete rest karein aur kaam se chhuti lein, din mein 10-12 glass garm " +
		"paani, ginger tea aur tulsi water piyein, subah-shaam bhap lein, garm paani se " +
		"3-4 baar garara karein, vitamin C wale phal jaise orange aur mosambi khayein, aur " +
		"halka khana jaise soup, khichdi aur daal lein. Agar 3 din mein behtar na ho ya " +
		"saans lene mein dikkat ho to turant doctor se milein."

	feverCoughChildAdvice = "Bacche ko fever aur khansi hai: aaram karwayein, garm kapde " +
		"pehnaayein, bharpur fluids jaise paani, juice aur soup dein, bhap dilayein, aur ek " +
		"saal se bade bacchon ko shahad de sakte hain. 2-3 din mein behtar na ho to doctor " +
		"se milein."

	agriWeatherAdvice = "Mausam ki jaankari: climate-resilient practices apnayein. Barish " +
		"ke season mein drainage ka dhyan rakhein, sukhe ke dauran mulching aur drip " +
		"irrigation ka upyog karein. Weather forecast ke liye local agriculture office se " +
		"sampark karein ya Meghdoot aur Kisan Suvidha jaise mobile apps use karein."

	agriSeedAdvice = "Beej chunaav: high-quality certified seeds ka upyog karein aur apne " +
		"kshetra ke liye suitable climate-resistant varieties chunein. Seeds ko fungicide " +
		"se treat karein. Subsidized seeds ke liye apne najdeeki Krishi Vigyan Kendra se " +
		"sampark karein."

	agriFertilizerAdvice = "Khaad prabandhan: organic khad jaise compost aur vermicompost " +
		"ka upyog karein. Soil testing karwayein taaki sahi matra mein fertilizer lage. " +
		"Nitrogen, phosphorus aur potassium ki balanced quantity use karein. Neem cake " +
		"natural pest control ke liye bhi helpful hai."

	agriPestAdvice = "Keet evam rog niyantran: Integrated Pest Management apnayein. Neem " +
		"oil ya garlic spray jaise organic solutions pehle try karein aur crop rotation " +
		"practice karein. Serious infestation ke liye local agriculture extension officer " +
		"se salah lein."

	agriGeneralAdvice = "Kheti evam krishi salah: crop rotation, soil health management " +
		"aur water conservation jaisi smart farming practices apnayein. Climate-resilient " +
		"varieties ka upyog karein aur fasal bima zaroor karwayein. PM-KISAN aur Kisan " +
		"Credit Card jaisi government schemes ka labh uthayein. Technical guidance ke liye " +
		"Krishi Vigyan Kendra se sampark karein."
)
