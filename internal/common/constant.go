package common

// TempPasswordBytes is the number of random bytes behind a recovery token;
// hex encoding doubles it to the 14 characters handed to the user.
const TempPasswordBytes = 7

// AnonymousDisplayName is what non-admin viewers see instead of an
// anonymous user's username.
const AnonymousDisplayName = "Anonymous User"
