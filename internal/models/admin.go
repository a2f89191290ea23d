package models

// AdminSettings is the single well-known settings document whose membership
// defines administrative privilege.
type AdminSettings struct {
	ID          string   `bson:"_id" json:"-"`
	AdminEmails []string `bson:"adminEmails" json:"adminEmails"`
}
