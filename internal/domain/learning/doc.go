// Package learning implements the per-card learning statistics: the mastery
// percentage, the Learning/Learnt classification and the adaptive study
// ordering.
//
// All functions are pure over domain.Card values. Applying a classification to
// deck membership is the job of the collection engine, which calls Classify
// after every counter change.
package learning
