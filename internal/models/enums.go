package models

// AgeGroup classifies a gift suggestion by the recipient's life stage.
type AgeGroup string

const (
	AgeGroupBaby       AgeGroup = "BABY"
	AgeGroupToddler    AgeGroup = "TODDLER"
	AgeGroupChild      AgeGroup = "CHILD"
	AgeGroupTeen       AgeGroup = "TEEN"
	AgeGroupYoungAdult AgeGroup = "YOUNG_ADULT"
	AgeGroupAdult      AgeGroup = "ADULT"
	AgeGroupSenior     AgeGroup = "SENIOR"
)

// AgeGroups lists every AgeGroup in declaration order.
var AgeGroups = []AgeGroup{
	AgeGroupBaby, AgeGroupToddler, AgeGroupChild, AgeGroupTeen,
	AgeGroupYoungAdult, AgeGroupAdult, AgeGroupSenior,
}

func (a AgeGroup) Valid() bool { return contains(AgeGroups, a) }

// Gender is the audience a gift suggestion is aimed at.
type Gender string

const (
	GenderMale      Gender = "MALE"
	GenderFemale    Gender = "FEMALE"
	GenderUnisex    Gender = "UNISEX"
	GenderNonBinary Gender = "NON_BINARY"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderUnisex, GenderNonBinary}

func (g Gender) Valid() bool { return contains(Genders, g) }

// Interest is the hobby or pastime a gift suggestion fits.
type Interest string

const (
	InterestSports      Interest = "SPORTS"
	InterestMusic       Interest = "MUSIC"
	InterestReading     Interest = "READING"
	InterestCooking     Interest = "COOKING"
	InterestPhotography Interest = "PHOTOGRAPHY"
	InterestGardening   Interest = "GARDENING"
	InterestTechnology  Interest = "TECHNOLOGY"
	InterestTravel      Interest = "TRAVEL"
	InterestArt         Interest = "ART"
	InterestFashion     Interest = "FASHION"
	InterestFitness     Interest = "FITNESS"
	InterestGaming      Interest = "GAMING"
	InterestMovies      Interest = "MOVIES"
	InterestCrafts      Interest = "CRAFTS"
	InterestScience     Interest = "SCIENCE"
	InterestOutdoors    Interest = "OUTDOORS"
	InterestCollecting  Interest = "COLLECTING"
	InterestBeauty      Interest = "BEAUTY"
)

var Interests = []Interest{
	InterestSports, InterestMusic, InterestReading, InterestCooking, InterestPhotography,
	InterestGardening, InterestTechnology, InterestTravel, InterestArt, InterestFashion,
	InterestFitness, InterestGaming, InterestMovies, InterestCrafts, InterestScience,
	InterestOutdoors, InterestCollecting, InterestBeauty,
}

func (i Interest) Valid() bool { return contains(Interests, i) }

// Occasion is the event a gift is given for.
type Occasion string

const (
	OccasionBirthday      Occasion = "BIRTHDAY"
	OccasionWedding       Occasion = "WEDDING"
	OccasionAnniversary   Occasion = "ANNIVERSARY"
	OccasionGraduation    Occasion = "GRADUATION"
	OccasionChristmas     Occasion = "CHRISTMAS"
	OccasionValentinesDay Occasion = "VALENTINES_DAY"
	OccasionMothersDay    Occasion = "MOTHERS_DAY"
	OccasionFathersDay    Occasion = "FATHERS_DAY"
	OccasionEaster        Occasion = "EASTER"
	OccasionNewYear       Occasion = "NEW_YEAR"
	OccasionThanksgiving  Occasion = "THANKSGIVING"
	OccasionBabyShower    Occasion = "BABY_SHOWER"
	OccasionBridalShower  Occasion = "BRIDAL_SHOWER"
	OccasionHousewarming  Occasion = "HOUSEWARMING"
	OccasionRetirement    Occasion = "RETIREMENT"
	OccasionGetWell       Occasion = "GET_WELL"
	OccasionThankYou      Occasion = "THANK_YOU"
	OccasionJustBecause   Occasion = "JUST_BECAUSE"
)

var Occasions = []Occasion{
	OccasionBirthday, OccasionWedding, OccasionAnniversary, OccasionGraduation,
	OccasionChristmas, OccasionValentinesDay, OccasionMothersDay, OccasionFathersDay,
	OccasionEaster, OccasionNewYear, OccasionThanksgiving, OccasionBabyShower,
	OccasionBridalShower, OccasionHousewarming, OccasionRetirement, OccasionGetWell,
	OccasionThankYou, OccasionJustBecause,
}

func (o Occasion) Valid() bool { return contains(Occasions, o) }

// Relationship describes how the giver knows the recipient.
type Relationship string

const (
	RelationshipFamily          Relationship = "FAMILY"
	RelationshipFriend          Relationship = "FRIEND"
	RelationshipColleague       Relationship = "COLLEAGUE"
	RelationshipRomanticPartner Relationship = "ROMANTIC_PARTNER"
	RelationshipAcquaintance    Relationship = "ACQUAINTANCE"
	RelationshipExtendedFamily  Relationship = "EXTENDED_FAMILY"
	RelationshipNeighbor        Relationship = "NEIGHBOR"
	RelationshipMentorStudent   Relationship = "MENTOR_STUDENT"
	RelationshipClient          Relationship = "CLIENT"
	RelationshipBoss            Relationship = "BOSS"
)

var Relationships = []Relationship{
	RelationshipFamily, RelationshipFriend, RelationshipColleague, RelationshipRomanticPartner,
	RelationshipAcquaintance, RelationshipExtendedFamily, RelationshipNeighbor,
	RelationshipMentorStudent, RelationshipClient, RelationshipBoss,
}

func (r Relationship) Valid() bool { return contains(Relationships, r) }

// PersonalityType is the recipient's temperament.
type PersonalityType string

const (
	PersonalityExtrovert     PersonalityType = "EXTROVERT"
	PersonalityIntrovert     PersonalityType = "INTROVERT"
	PersonalityAdventurous   PersonalityType = "ADVENTUROUS"
	PersonalityCreative      PersonalityType = "CREATIVE"
	PersonalityAnalytical    PersonalityType = "ANALYTICAL"
	PersonalityPractical     PersonalityType = "PRACTICAL"
	PersonalityNurturing     PersonalityType = "NURTURING"
	PersonalityCompetitive   PersonalityType = "COMPETITIVE"
	PersonalityRelaxed       PersonalityType = "RELAXED"
	PersonalityIntellectual  PersonalityType = "INTELLECTUAL"
	PersonalityPlayful       PersonalityType = "PLAYFUL"
	PersonalitySophisticated PersonalityType = "SOPHISTICATED"
	PersonalityMinimalist    PersonalityType = "MINIMALIST"
	PersonalityTraditional   PersonalityType = "TRADITIONAL"
	PersonalityModern        PersonalityType = "MODERN"
)

var PersonalityTypes = []PersonalityType{
	PersonalityExtrovert, PersonalityIntrovert, PersonalityAdventurous, PersonalityCreative,
	PersonalityAnalytical, PersonalityPractical, PersonalityNurturing, PersonalityCompetitive,
	PersonalityRelaxed, PersonalityIntellectual, PersonalityPlayful, PersonalitySophisticated,
	PersonalityMinimalist, PersonalityTraditional, PersonalityModern,
}

func (p PersonalityType) Valid() bool { return contains(PersonalityTypes, p) }

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
