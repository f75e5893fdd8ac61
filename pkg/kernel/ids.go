package kernel

type ResumeID string

func NewResumeID(id string) ResumeID { return ResumeID(id) }
func (r ResumeID) String() string    { return string(r) }
func (r ResumeID) IsEmpty() bool     { return string(r) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func (a ApplicationID) String() string         { return string(a) }
func (a ApplicationID) IsEmpty() bool          { return string(a) == "" }

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (c CandidateID) String() string       { return string(c) }
func (c CandidateID) IsEmpty() bool        { return string(c) == "" }

type SkillSlug string

func (s SkillSlug) String() string { return string(s) }
