package dto

type AddCustomizedInput struct {
	ProductID        int
	UseSecondaryTier bool
	AddedIDs         []int
	Removed          []string
	Notes            string
}

type ShareLink struct {
	Summary string
	Link    string
}
