package junction

// CreateOutcome enumerates every way Create can end. Outcomes other than
// CreateError carry no error value; races lost to another process are
// reported as distinct outcomes, not failures.
type CreateOutcome int

const (
	CreateSuccess CreateOutcome = iota
	CreateTargetTooLong
	CreateAccessDenied
	CreateDisappeared
	CreateAlreadyExistsButNotJunction
	CreateAlreadyExistsWithDifferentTarget
	CreateError
)

func (o CreateOutcome) String() string {
	switch o {
	case CreateSuccess:
		return "success"
	case CreateTargetTooLong:
		return "target-too-long"
	case CreateAccessDenied:
		return "access-denied"
	case CreateDisappeared:
		return "disappeared"
	case CreateAlreadyExistsButNotJunction:
		return "already-exists-but-not-junction"
	case CreateAlreadyExistsWithDifferentTarget:
		return "already-exists-with-different-target"
	case CreateError:
		return "error"
	}
	return "unknown"
}

// ReadOutcome enumerates every way Read can end.
type ReadOutcome int

const (
	ReadSuccess ReadOutcome = iota
	ReadAccessDenied
	ReadDoesNotExist
	ReadNotAJunction
	ReadError
)

func (o ReadOutcome) String() string {
	switch o {
	case ReadSuccess:
		return "success"
	case ReadAccessDenied:
		return "access-denied"
	case ReadDoesNotExist:
		return "does-not-exist"
	case ReadNotAJunction:
		return "not-a-junction"
	case ReadError:
		return "error"
	}
	return "unknown"
}

// DeleteOutcome enumerates every way Delete can end.
type DeleteOutcome int

const (
	DeleteSuccess DeleteOutcome = iota
	DeleteAccessDenied
	DeleteDoesNotExist
	DeleteDirectoryNotEmpty
	DeleteError
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteSuccess:
		return "success"
	case DeleteAccessDenied:
		return "access-denied"
	case DeleteDoesNotExist:
		return "does-not-exist"
	case DeleteDirectoryNotEmpty:
		return "directory-not-empty"
	case DeleteError:
		return "error"
	}
	return "unknown"
}
